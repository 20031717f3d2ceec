package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"finsight/internal/api/repository"
	"finsight/internal/api/service"
	"finsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RecommendationHandler handles HTTP requests for recommendation queries.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
	logger                *logger.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService, logger *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService, logger: logger}
}

// RegisterRoutes registers the recommendation routes on the Echo instance.
func (h *RecommendationHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/recommendations/dates", h.GetDates)
	e.GET("/recommendations/latest", h.GetLatest)
	e.GET("/stocks/:stock_id/recommendations", h.GetStockHistory)
}

// GetDates godoc
// @Summary List signal dates
// @Description Per-date loaded and missing signal counts
// @Tags recommendations
// @Produce  json
// @Success 200 {object} dto.RecommendationDatesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /recommendations/dates [get]
func (h *RecommendationHandler) GetDates(c echo.Context) error {
	resp, err := h.recommendationService.GetDates(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get recommendation dates", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get recommendation dates"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetLatest godoc
// @Summary Latest top-N recommendations
// @Description Top-N recommendations for the most recent signal date
// @Tags recommendations
// @Produce  json
// @Param   limit          query   int     false   "Row limit, clamped to [1,200]"
// @Param   complete_only  query   bool    false   "Only dates where every stock has a signal"
// @Success 200 {object} dto.LatestRecommendationsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /recommendations/latest [get]
func (h *RecommendationHandler) GetLatest(c echo.Context) error {
	limit, err := intQueryParam(c, "limit", 20)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	completeOnly, err := boolQueryParam(c, "complete_only", true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.recommendationService.GetLatest(c.Request().Context(), limit, completeOnly)
	if errors.Is(err, repository.ErrNoRecommendationData) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No recommendation data"})
	}
	if err != nil {
		h.logger.Error("Failed to get latest recommendations", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get latest recommendations"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetStockHistory godoc
// @Summary One stock's signal history
// @Description Recommendation history for one stock, newest first
// @Tags recommendations
// @Produce  json
// @Param   stock_id  path    int true    "Stock ID"
// @Param   limit     query   int false   "Row limit, clamped to [1,500]"
// @Success 200 {object} dto.StockRecommendationsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{stock_id}/recommendations [get]
func (h *RecommendationHandler) GetStockHistory(c echo.Context) error {
	stockID, err := strconv.ParseUint(c.Param("stock_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid stock ID"})
	}
	limit, err := intQueryParam(c, "limit", 60)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.recommendationService.GetStockHistory(c.Request().Context(), uint(stockID), limit)
	if errors.Is(err, repository.ErrNoRecommendationData) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No data for this stock_id"})
	}
	if err != nil {
		h.logger.Error("Failed to get stock recommendation history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stock recommendations"})
	}
	return c.JSON(http.StatusOK, resp)
}

// intQueryParam reads an integer query parameter. An absent parameter yields
// def, a malformed one an error so the handler can reject the request.
func intQueryParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an integer", name)
	}
	return v, nil
}

// boolQueryParam reads a boolean query parameter. An absent parameter yields
// def, a malformed one an error so the handler can reject the request.
func boolQueryParam(c echo.Context, name string, def bool) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query parameter %q must be a boolean", name)
	}
	return v, nil
}
