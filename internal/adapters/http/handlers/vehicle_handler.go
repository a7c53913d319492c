package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// VehicleHandler handles fleet endpoints
type VehicleHandler struct {
	wsService *services.WorkspaceService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(wsService *services.WorkspaceService) *VehicleHandler {
	return &VehicleHandler{wsService: wsService}
}

// folderIDParam reads the optional folder query parameter. Absent or
// empty means root.
func folderIDParam(c *fiber.Ctx) *string {
	folderID := c.Query("folder_id")
	if folderID == "" {
		return nil
	}
	return &folderID
}

// List returns vehicles at root or inside a folder
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Param folder_id query string false "Folder ID, omit for root"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	view, err := h.wsService.List(c.Context(), sess, domain.KindVehicle, folderIDParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to view vehicles")
		}
		return response.InternalServerError(c, "Failed to list vehicles")
	}

	return response.Success(c, "Vehicles retrieved successfully", view)
}

// Create adds a vehicle
// @Summary Create vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.wsService.AddVehicle(c.Context(), sess, &input)
	if err != nil {
		return vehicleError(c, err, "Failed to create vehicle")
	}

	return response.Created(c, "Vehicle created successfully", vehicle)
}

// Update replaces a vehicle's fields
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.wsService.UpdateVehicle(c.Context(), sess, c.Params("id"), &input)
	if err != nil {
		return vehicleError(c, err, "Failed to update vehicle")
	}

	return response.Success(c, "Vehicle updated successfully", vehicle)
}

// Delete removes a vehicle
// @Summary Delete vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.wsService.DeleteVehicle(c.Context(), sess, c.Params("id")); err != nil {
		return vehicleError(c, err, "Failed to delete vehicle")
	}

	return response.Success(c, "Vehicle deleted successfully", nil)
}

// Move assigns a vehicle to a folder or back to root
// @Summary Move vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /vehicles/{id}/move [patch]
func (h *VehicleHandler) Move(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.wsService.MoveEntity(c.Context(), sess, domain.KindVehicle, c.Params("id"), req.FolderID); err != nil {
		return vehicleError(c, err, "Failed to move vehicle")
	}

	return response.Success(c, "Vehicle moved successfully", nil)
}

// MoveRequest represents a folder assignment request body
type MoveRequest struct {
	FolderID *string `json:"folderId"`
}

func vehicleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to modify vehicles")
	case errors.Is(err, domain.ErrVehicleNotFound):
		return response.NotFound(c, "Vehicle not found")
	case errors.Is(err, domain.ErrFolderNotFound):
		return response.BadRequest(c, "Folder not found")
	case errors.Is(err, domain.ErrFolderKindMismatch):
		return response.BadRequest(c, "Folder holds a different entity type")
	default:
		return response.InternalServerError(c, fallback)
	}
}
