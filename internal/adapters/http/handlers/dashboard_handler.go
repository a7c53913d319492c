package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// DashboardHandler handles the landing view statistics endpoint
type DashboardHandler struct {
	dashService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashService: dashService}
}

// Stats returns workspace counts and per-currency revenue
// @Summary Dashboard statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.dashService.GetStats(c.Context(), sess)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", stats)
}
