package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// ClientHandler handles client book endpoints
type ClientHandler struct {
	wsService *services.WorkspaceService
}

// NewClientHandler creates a new client handler
func NewClientHandler(wsService *services.WorkspaceService) *ClientHandler {
	return &ClientHandler{wsService: wsService}
}

// List returns clients at root or inside a folder
// @Summary List clients
// @Tags Clients
// @Produce json
// @Param folder_id query string false "Folder ID, omit for root"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	view, err := h.wsService.List(c.Context(), sess, domain.KindClient, folderIDParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to view clients")
		}
		return response.InternalServerError(c, "Failed to list clients")
	}

	return response.Success(c, "Clients retrieved successfully", view)
}

// Create adds a client
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := h.wsService.AddClient(c.Context(), sess, &input)
	if err != nil {
		return clientError(c, err, "Failed to create client")
	}

	return response.Created(c, "Client created successfully", client)
}

// Update replaces a client's fields
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ClientInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	client, err := h.wsService.UpdateClient(c.Context(), sess, c.Params("id"), &input)
	if err != nil {
		return clientError(c, err, "Failed to update client")
	}

	return response.Success(c, "Client updated successfully", client)
}

// Delete removes a client
// @Summary Delete client
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.wsService.DeleteClient(c.Context(), sess, c.Params("id")); err != nil {
		return clientError(c, err, "Failed to delete client")
	}

	return response.Success(c, "Client deleted successfully", nil)
}

// Move assigns a client to a folder or back to root
// @Summary Move client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /clients/{id}/move [patch]
func (h *ClientHandler) Move(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.wsService.MoveEntity(c.Context(), sess, domain.KindClient, c.Params("id"), req.FolderID); err != nil {
		return clientError(c, err, "Failed to move client")
	}

	return response.Success(c, "Client moved successfully", nil)
}

func clientError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to modify clients")
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, "Client not found")
	case errors.Is(err, domain.ErrFolderNotFound):
		return response.BadRequest(c, "Folder not found")
	case errors.Is(err, domain.ErrFolderKindMismatch):
		return response.BadRequest(c, "Folder holds a different entity type")
	default:
		return response.InternalServerError(c, fallback)
	}
}
