package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// FolderHandler handles folder endpoints
type FolderHandler struct {
	wsService *services.WorkspaceService
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(wsService *services.WorkspaceService) *FolderHandler {
	return &FolderHandler{wsService: wsService}
}

// RenameRequest represents a folder rename request body
type RenameRequest struct {
	Name string `json:"name"`
}

// Create adds a folder
// @Summary Create folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /folders [post]
func (h *FolderHandler) Create(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.FolderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	folder, err := h.wsService.CreateFolder(c.Context(), sess, &input)
	if err != nil {
		return folderError(c, err, "Failed to create folder")
	}

	return response.Created(c, "Folder created successfully", folder)
}

// Rename changes a folder's name
// @Summary Rename folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /folders/{id} [put]
func (h *FolderHandler) Rename(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RenameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	folder, err := h.wsService.RenameFolder(c.Context(), sess, c.Params("id"), req.Name)
	if err != nil {
		return folderError(c, err, "Failed to rename folder")
	}

	return response.Success(c, "Folder renamed successfully", folder)
}

// Delete removes a folder, moving its members back to root
// @Summary Delete folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /folders/{id} [delete]
func (h *FolderHandler) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.wsService.DeleteFolder(c.Context(), sess, c.Params("id")); err != nil {
		return folderError(c, err, "Failed to delete folder")
	}

	return response.Success(c, "Folder deleted successfully", nil)
}

func folderError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to modify folders")
	case errors.Is(err, domain.ErrFolderNotFound):
		return response.NotFound(c, "Folder not found")
	case errors.Is(err, domain.ErrEmptyFolderName):
		return response.BadRequest(c, "Folder name is required")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Unknown folder type")
	default:
		return response.InternalServerError(c, fallback)
	}
}
