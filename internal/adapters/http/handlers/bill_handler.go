package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/http/middleware"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/services"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/pkg/response"
)

// BillHandler handles billing endpoints
type BillHandler struct {
	wsService     *services.WorkspaceService
	exportService *services.ExportService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(wsService *services.WorkspaceService, exportService *services.ExportService) *BillHandler {
	return &BillHandler{
		wsService:     wsService,
		exportService: exportService,
	}
}

// List returns bills at root or inside a folder, newest first
// @Summary List bills
// @Tags Bills
// @Produce json
// @Param folder_id query string false "Folder ID, omit for root"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	view, err := h.wsService.List(c.Context(), sess, domain.KindBill, folderIDParam(c))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return response.Forbidden(c, "You don't have permission to view bills")
		}
		return response.InternalServerError(c, "Failed to list bills")
	}

	return response.Success(c, "Bills retrieved successfully", view)
}

// Get returns a single bill as stored, for the edit form. The print
// endpoint serves the vehicle-resolved view.
// @Summary Get bill
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bills/{id} [get]
func (h *BillHandler) Get(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	bill, err := h.wsService.GetBill(c.Context(), sess, c.Params("id"))
	if err != nil {
		return billError(c, err, "Failed to get bill")
	}

	return response.Success(c, "Bill retrieved successfully", bill)
}

// Create adds a bill
// @Summary Create bill
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.BillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bill, err := h.wsService.AddBill(c.Context(), sess, &input)
	if err != nil {
		return billError(c, err, "Failed to create bill")
	}

	return response.Created(c, "Bill created successfully", bill)
}

// Update replaces a bill's fields
// @Summary Update bill
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bills/{id} [put]
func (h *BillHandler) Update(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.BillInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bill, err := h.wsService.UpdateBill(c.Context(), sess, c.Params("id"), &input)
	if err != nil {
		return billError(c, err, "Failed to update bill")
	}

	return response.Success(c, "Bill updated successfully", bill)
}

// Delete removes a bill
// @Summary Delete bill
// @Tags Bills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bills/{id} [delete]
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.wsService.DeleteBill(c.Context(), sess, c.Params("id")); err != nil {
		return billError(c, err, "Failed to delete bill")
	}

	return response.Success(c, "Bill deleted successfully", nil)
}

// Move assigns a bill to a folder or back to root
// @Summary Move bill
// @Tags Bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /bills/{id}/move [patch]
func (h *BillHandler) Move(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.wsService.MoveEntity(c.Context(), sess, domain.KindBill, c.Params("id"), req.FolderID); err != nil {
		return billError(c, err, "Failed to move bill")
	}

	return response.Success(c, "Bill moved successfully", nil)
}

// Print renders a bill as a printable HTML invoice
// @Summary Print bill
// @Tags Bills
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string
// @Router /bills/{id}/print [get]
func (h *BillHandler) Print(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	page, err := h.exportService.RenderBill(c.Context(), sess, c.Params("id"))
	if err != nil {
		return billError(c, err, "Failed to render bill")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

func billError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to modify bills")
	case errors.Is(err, domain.ErrBillNotFound):
		return response.NotFound(c, "Bill not found")
	case errors.Is(err, domain.ErrVehicleRequired):
		return response.BadRequest(c, "A vehicle is required")
	case errors.Is(err, domain.ErrVehicleNotFound):
		return response.BadRequest(c, "Vehicle not found")
	case errors.Is(err, domain.ErrNoServices):
		return response.BadRequest(c, "At least one service line is required")
	case errors.Is(err, domain.ErrFolderNotFound):
		return response.BadRequest(c, "Folder not found")
	case errors.Is(err, domain.ErrFolderKindMismatch):
		return response.BadRequest(c, "Folder holds a different entity type")
	default:
		return response.InternalServerError(c, fallback)
	}
}
