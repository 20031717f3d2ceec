package http

import (
	"errors"
	"net/http"
	"time"

	"finsight/internal/api/repository"
	"finsight/internal/api/service"
	"finsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HotTopicHandler handles HTTP requests for hot-topic queries.
type HotTopicHandler struct {
	hotTopicService service.HotTopicService
	logger          *logger.Logger
}

// NewHotTopicHandler creates a new HotTopicHandler.
func NewHotTopicHandler(hotTopicService service.HotTopicService, logger *logger.Logger) *HotTopicHandler {
	return &HotTopicHandler{hotTopicService: hotTopicService, logger: logger}
}

// RegisterRoutes registers the hot-topic routes on the Echo instance.
func (h *HotTopicHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/hot-topics/latest", h.GetLatest)
	e.GET("/hot-topics", h.GetByDate)
}

// GetLatest godoc
// @Summary Latest top-N hot topics
// @Description Top-N hot topics for the most recent loaded date
// @Tags hot-topics
// @Produce  json
// @Param   limit        query   int     false   "Row limit, clamped to [1,200]"
// @Param   source_code  query   string  false   "Source code (default NAVER)"
// @Success 200 {object} dto.HotTopicsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /hot-topics/latest [get]
func (h *HotTopicHandler) GetLatest(c echo.Context) error {
	limit, err := intQueryParam(c, "limit", 20)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	sourceCode := c.QueryParam("source_code")

	resp, err := h.hotTopicService.GetLatest(c.Request().Context(), limit, sourceCode)
	if errors.Is(err, repository.ErrNoHotTopicData) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No hot topic data"})
	}
	if err != nil {
		h.logger.Error("Failed to get latest hot topics", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get hot topics"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByDate godoc
// @Summary Top-N hot topics for a date
// @Description Top-N hot topics for an explicit topic date
// @Tags hot-topics
// @Produce  json
// @Param   date         query   string  true    "Topic date (YYYY-MM-DD)"
// @Param   limit        query   int     false   "Row limit, clamped to [1,200]"
// @Param   source_code  query   string  false   "Source code (default NAVER)"
// @Success 200 {object} dto.HotTopicsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /hot-topics [get]
func (h *HotTopicHandler) GetByDate(c echo.Context) error {
	topicDate, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	limit, err := intQueryParam(c, "limit", 20)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	sourceCode := c.QueryParam("source_code")

	resp, err := h.hotTopicService.GetByDate(c.Request().Context(), topicDate, limit, sourceCode)
	if errors.Is(err, repository.ErrSourceNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No source with this code"})
	}
	if err != nil {
		h.logger.Error("Failed to get hot topics by date", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get hot topics"})
	}
	return c.JSON(http.StatusOK, resp)
}
