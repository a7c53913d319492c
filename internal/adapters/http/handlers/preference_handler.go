package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// PreferenceHandler handles per-user display preference endpoints
type PreferenceHandler struct {
	prefService *services.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(prefService *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

// Get returns the caller's preferences
// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /preferences [get]
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	prefs, err := h.prefService.Get(c.Context(), sess)
	if err != nil {
		return response.InternalServerError(c, "Failed to get preferences")
	}

	return response.Success(c, "Preferences retrieved successfully", prefs)
}

// Set overwrites the caller's preferences
// @Summary Set preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /preferences [put]
func (h *PreferenceHandler) Set(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var prefs services.Preferences
	if err := c.BodyParser(&prefs); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.prefService.Set(c.Context(), sess, &prefs); err != nil {
		return response.InternalServerError(c, "Failed to save preferences")
	}

	return response.Success(c, "Preferences saved successfully", prefs)
}
