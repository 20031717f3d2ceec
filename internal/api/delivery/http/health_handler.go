package http

import (
	"net/http"

	"finsight/internal/api/dto"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the liveness payload.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// RegisterRoutes registers the health route on the Echo instance.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)
}

// Health godoc
// @Summary Liveness check
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{OK: true, Service: h.serviceName})
}
