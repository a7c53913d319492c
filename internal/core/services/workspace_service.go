package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/adapters/persistence/repositories"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/policy"
)

// Placeholder fields shown for a bill whose vehicle was deleted.
const (
	placeholderVehicleName = "Unknown"
	placeholderField       = "?"
)

// WorkspaceService is the workspace store. Every operation loads the
// caller's full workspace, applies one mutation and writes the whole
// payload back, so the stored blob is always internally consistent.
type WorkspaceService struct {
	wsRepo repositories.WorkspaceRepository
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(wsRepo repositories.WorkspaceRepository) *WorkspaceService {
	return &WorkspaceService{wsRepo: wsRepo}
}

// FolderTile is a folder plus its member count, shown on root listings.
type FolderTile struct {
	domain.Folder
	Count int `json:"count"`
}

// ListView is the result of listing one collection: the entities at the
// requested location plus, at root only, the folder tiles of that kind.
type ListView struct {
	Vehicles []domain.Vehicle `json:"vehicles,omitempty"`
	Clients  []domain.Client  `json:"clients,omitempty"`
	Bills    []domain.Bill    `json:"bills,omitempty"`
	Folders  []FolderTile     `json:"folders,omitempty"`
}

// VehicleInput carries the editable vehicle fields.
type VehicleInput struct {
	CustomID    string  `json:"customId"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Driver      string  `json:"driver"`
	DriverPhone string  `json:"driverPhone"`
	Route       string  `json:"route"`
	Status      string  `json:"status"`
	FolderID    *string `json:"folderId"`
}

// ClientInput carries the editable client fields.
type ClientInput struct {
	CustomID string  `json:"customId"`
	Name     string  `json:"name"`
	Contact  string  `json:"contact"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Status   string  `json:"status"`
	FolderID *string `json:"folderId"`
}

// BillInput carries the editable bill fields. Total arrives from the
// caller and is persisted as-is.
type BillInput struct {
	VehicleID  string               `json:"vehicleId"`
	Client     string               `json:"client"`
	Date       string               `json:"date"`
	Services   []domain.ServiceLine `json:"services"`
	Currency   string               `json:"currency"`
	Additional float64              `json:"additional"`
	Total      float64              `json:"total"`
	Notes      string               `json:"notes"`
	FolderID   *string              `json:"folderId"`
}

// FolderInput carries the editable folder fields.
type FolderInput struct {
	Name string `json:"name"`
	Kind string `json:"type"`
}

func newID() string {
	return uuid.NewString()
}

// Load returns the caller's entire workspace.
func (s *WorkspaceService) Load(ctx context.Context, sess domain.Session) (*domain.Workspace, error) {
	return s.wsRepo.Load(ctx, sess.Username)
}

// List returns the entities of one kind at the given location. A nil
// folderID means root, where folder tiles for the kind are included.
// Inside a folder only the members are returned.
func (s *WorkspaceService) List(ctx context.Context, sess domain.Session, kind domain.EntityKind, folderID *string) (*ListView, error) {
	if err := policy.Authorize(sess, policy.ActionView, kind); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}

	view := &ListView{}
	switch kind {
	case domain.KindVehicle:
		view.Vehicles = make([]domain.Vehicle, 0)
		for _, v := range ws.Vehicles {
			if atLocation(v.FolderID, folderID) {
				view.Vehicles = append(view.Vehicles, v)
			}
		}
	case domain.KindClient:
		view.Clients = make([]domain.Client, 0)
		for _, c := range ws.Clients {
			if atLocation(c.FolderID, folderID) {
				view.Clients = append(view.Clients, c)
			}
		}
	case domain.KindBill:
		view.Bills = make([]domain.Bill, 0)
		for _, b := range ws.Bills {
			if atLocation(b.FolderID, folderID) {
				view.Bills = append(view.Bills, b)
			}
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if folderID == nil {
		view.Folders = s.folderTiles(ws, kind)
	}
	return view, nil
}

// atLocation reports whether an entity's folder assignment matches the
// requested location. Root matches entities without a folder.
func atLocation(entityFolder, requested *string) bool {
	if requested == nil {
		return entityFolder == nil || *entityFolder == ""
	}
	return entityFolder != nil && *entityFolder == *requested
}

func (s *WorkspaceService) folderTiles(ws *domain.Workspace, kind domain.EntityKind) []FolderTile {
	tiles := make([]FolderTile, 0)
	for _, f := range ws.Folders {
		if f.Kind != kind {
			continue
		}
		tiles = append(tiles, FolderTile{Folder: f, Count: countMembers(ws, f)})
	}
	return tiles
}

func countMembers(ws *domain.Workspace, f domain.Folder) int {
	n := 0
	switch f.Kind {
	case domain.KindVehicle:
		for _, v := range ws.Vehicles {
			if v.FolderID != nil && *v.FolderID == f.ID {
				n++
			}
		}
	case domain.KindClient:
		for _, c := range ws.Clients {
			if c.FolderID != nil && *c.FolderID == f.ID {
				n++
			}
		}
	case domain.KindBill:
		for _, b := range ws.Bills {
			if b.FolderID != nil && *b.FolderID == f.ID {
				n++
			}
		}
	}
	return n
}

// validateFolderRef checks that a non-nil folder reference points at an
// existing folder of the right kind.
func validateFolderRef(ws *domain.Workspace, folderID *string, kind domain.EntityKind) error {
	if folderID == nil || *folderID == "" {
		return nil
	}
	for _, f := range ws.Folders {
		if f.ID == *folderID {
			if f.Kind != kind {
				return domain.ErrFolderKindMismatch
			}
			return nil
		}
	}
	return domain.ErrFolderNotFound
}

// AddVehicle appends a vehicle to the caller's fleet.
func (s *WorkspaceService) AddVehicle(ctx context.Context, sess domain.Session, input *VehicleInput) (*domain.Vehicle, error) {
	if err := policy.Authorize(sess, policy.ActionCreate, domain.KindVehicle); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindVehicle); err != nil {
		return nil, err
	}

	vehicle := domain.Vehicle{
		ID:          newID(),
		CustomID:    input.CustomID,
		Name:        input.Name,
		Type:        input.Type,
		Driver:      input.Driver,
		DriverPhone: input.DriverPhone,
		Route:       input.Route,
		Status:      input.Status,
		FolderID:    normalizeFolderRef(input.FolderID),
	}
	ws.Vehicles = append(ws.Vehicles, vehicle)
	if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateVehicle replaces the editable fields of an existing vehicle.
func (s *WorkspaceService) UpdateVehicle(ctx context.Context, sess domain.Session, id string, input *VehicleInput) (*domain.Vehicle, error) {
	if err := policy.Authorize(sess, policy.ActionUpdate, domain.KindVehicle); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindVehicle); err != nil {
		return nil, err
	}

	for i := range ws.Vehicles {
		if ws.Vehicles[i].ID != id {
			continue
		}
		v := &ws.Vehicles[i]
		v.CustomID = input.CustomID
		v.Name = input.Name
		v.Type = input.Type
		v.Driver = input.Driver
		v.DriverPhone = input.DriverPhone
		v.Route = input.Route
		v.Status = input.Status
		v.FolderID = normalizeFolderRef(input.FolderID)
		if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
			return nil, err
		}
		updated := *v
		return &updated, nil
	}
	return nil, domain.ErrVehicleNotFound
}

// DeleteVehicle removes a vehicle. Bills referencing it keep their
// vehicleId and render with placeholders from then on. Deleting an
// unknown id is a no-op.
func (s *WorkspaceService) DeleteVehicle(ctx context.Context, sess domain.Session, id string) error {
	if err := policy.Authorize(sess, policy.ActionDelete, domain.KindVehicle); err != nil {
		return err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return err
	}
	kept := ws.Vehicles[:0]
	for _, v := range ws.Vehicles {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	ws.Vehicles = kept
	return s.wsRepo.Save(ctx, sess.Username, ws)
}

// AddClient appends a client to the caller's book.
func (s *WorkspaceService) AddClient(ctx context.Context, sess domain.Session, input *ClientInput) (*domain.Client, error) {
	if err := policy.Authorize(sess, policy.ActionCreate, domain.KindClient); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindClient); err != nil {
		return nil, err
	}

	client := domain.Client{
		ID:       newID(),
		CustomID: input.CustomID,
		Name:     input.Name,
		Contact:  input.Contact,
		Phone:    input.Phone,
		Email:    input.Email,
		Status:   input.Status,
		FolderID: normalizeFolderRef(input.FolderID),
	}
	ws.Clients = append(ws.Clients, client)
	if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
		return nil, err
	}
	return &client, nil
}

// UpdateClient replaces the editable fields of an existing client.
func (s *WorkspaceService) UpdateClient(ctx context.Context, sess domain.Session, id string, input *ClientInput) (*domain.Client, error) {
	if err := policy.Authorize(sess, policy.ActionUpdate, domain.KindClient); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindClient); err != nil {
		return nil, err
	}

	for i := range ws.Clients {
		if ws.Clients[i].ID != id {
			continue
		}
		c := &ws.Clients[i]
		c.CustomID = input.CustomID
		c.Name = input.Name
		c.Contact = input.Contact
		c.Phone = input.Phone
		c.Email = input.Email
		c.Status = input.Status
		c.FolderID = normalizeFolderRef(input.FolderID)
		if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
			return nil, err
		}
		updated := *c
		return &updated, nil
	}
	return nil, domain.ErrClientNotFound
}

// DeleteClient removes a client. Unknown ids are a no-op.
func (s *WorkspaceService) DeleteClient(ctx context.Context, sess domain.Session, id string) error {
	if err := policy.Authorize(sess, policy.ActionDelete, domain.KindClient); err != nil {
		return err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return err
	}
	kept := ws.Clients[:0]
	for _, c := range ws.Clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	ws.Clients = kept
	return s.wsRepo.Save(ctx, sess.Username, ws)
}

// AddBill prepends a bill so listings show newest first. The vehicle
// must exist at creation time; Total is stored exactly as submitted.
func (s *WorkspaceService) AddBill(ctx context.Context, sess domain.Session, input *BillInput) (*domain.Bill, error) {
	if err := policy.Authorize(sess, policy.ActionCreate, domain.KindBill); err != nil {
		return nil, err
	}
	if input.VehicleID == "" {
		return nil, domain.ErrVehicleRequired
	}
	if len(input.Services) == 0 {
		return nil, domain.ErrNoServices
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if findVehicle(ws, input.VehicleID) == nil {
		return nil, domain.ErrVehicleNotFound
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindBill); err != nil {
		return nil, err
	}

	bill := domain.Bill{
		ID:         newID(),
		VehicleID:  input.VehicleID,
		Client:     input.Client,
		Date:       input.Date,
		Services:   input.Services,
		Currency:   input.Currency,
		Additional: input.Additional,
		Total:      input.Total,
		Notes:      input.Notes,
		FolderID:   normalizeFolderRef(input.FolderID),
	}
	ws.Bills = append([]domain.Bill{bill}, ws.Bills...)
	if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
		return nil, err
	}
	return &bill, nil
}

// UpdateBill replaces the editable fields of an existing bill. Unlike
// the other collections, updating a missing bill is an error.
func (s *WorkspaceService) UpdateBill(ctx context.Context, sess domain.Session, id string, input *BillInput) (*domain.Bill, error) {
	if err := policy.Authorize(sess, policy.ActionUpdate, domain.KindBill); err != nil {
		return nil, err
	}
	if input.VehicleID == "" {
		return nil, domain.ErrVehicleRequired
	}
	if len(input.Services) == 0 {
		return nil, domain.ErrNoServices
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	if err := validateFolderRef(ws, input.FolderID, domain.KindBill); err != nil {
		return nil, err
	}

	for i := range ws.Bills {
		if ws.Bills[i].ID != id {
			continue
		}
		b := &ws.Bills[i]
		b.VehicleID = input.VehicleID
		b.Client = input.Client
		b.Date = input.Date
		b.Services = input.Services
		b.Currency = input.Currency
		b.Additional = input.Additional
		b.Total = input.Total
		b.Notes = input.Notes
		b.FolderID = normalizeFolderRef(input.FolderID)
		if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
			return nil, err
		}
		updated := *b
		return &updated, nil
	}
	return nil, domain.ErrBillNotFound
}

// DeleteBill removes a bill. Unknown ids are a no-op.
func (s *WorkspaceService) DeleteBill(ctx context.Context, sess domain.Session, id string) error {
	if err := policy.Authorize(sess, policy.ActionDelete, domain.KindBill); err != nil {
		return err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return err
	}
	kept := ws.Bills[:0]
	for _, b := range ws.Bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	ws.Bills = kept
	return s.wsRepo.Save(ctx, sess.Username, ws)
}

// GetBill looks up a single bill by id.
func (s *WorkspaceService) GetBill(ctx context.Context, sess domain.Session, id string) (*domain.Bill, error) {
	if err := policy.Authorize(sess, policy.ActionView, domain.KindBill); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	for i := range ws.Bills {
		if ws.Bills[i].ID == id {
			b := ws.Bills[i]
			return &b, nil
		}
	}
	return nil, domain.ErrBillNotFound
}

// ResolveBill joins a bill with its vehicle for printing. A dangling
// vehicle reference resolves to placeholder display fields instead of
// an error, so old invoices stay printable.
func (s *WorkspaceService) ResolveBill(ctx context.Context, sess domain.Session, id string) (*domain.ResolvedBill, error) {
	if err := policy.Authorize(sess, policy.ActionPrint, domain.KindBill); err != nil {
		return nil, err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	for i := range ws.Bills {
		if ws.Bills[i].ID != id {
			continue
		}
		resolved := &domain.ResolvedBill{
			Bill:            ws.Bills[i],
			VehicleName:     placeholderVehicleName,
			VehicleCustomID: placeholderField,
			VehicleType:     placeholderField,
			VehicleDriver:   placeholderField,
		}
		if v := findVehicle(ws, ws.Bills[i].VehicleID); v != nil {
			resolved.VehicleName = v.Name
			resolved.VehicleCustomID = v.CustomID
			resolved.VehicleType = v.Type
			resolved.VehicleDriver = v.Driver
		}
		return resolved, nil
	}
	return nil, domain.ErrBillNotFound
}

func findVehicle(ws *domain.Workspace, id string) *domain.Vehicle {
	for i := range ws.Vehicles {
		if ws.Vehicles[i].ID == id {
			return &ws.Vehicles[i]
		}
	}
	return nil
}

// CreateFolder creates a folder of the given kind.
func (s *WorkspaceService) CreateFolder(ctx context.Context, sess domain.Session, input *FolderInput) (*domain.Folder, error) {
	kind, ok := domain.ParseEntityKind(input.Kind)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if err := policy.Authorize(sess, policy.ActionCreate, kind); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrEmptyFolderName
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}

	folder := domain.Folder{
		ID:   newID(),
		Name: name,
		Kind: kind,
	}
	ws.Folders = append(ws.Folders, folder)
	if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder changes a folder's display name. The kind is fixed at
// creation and cannot change.
func (s *WorkspaceService) RenameFolder(ctx context.Context, sess domain.Session, id, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyFolderName
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return nil, err
	}
	for i := range ws.Folders {
		if ws.Folders[i].ID != id {
			continue
		}
		if err := policy.Authorize(sess, policy.ActionUpdate, ws.Folders[i].Kind); err != nil {
			return nil, err
		}
		ws.Folders[i].Name = name
		if err := s.wsRepo.Save(ctx, sess.Username, ws); err != nil {
			return nil, err
		}
		f := ws.Folders[i]
		return &f, nil
	}
	return nil, domain.ErrFolderNotFound
}

// DeleteFolder removes a folder and moves its members back to root.
// Member entities are never deleted with their folder. Unknown ids
// are a no-op.
func (s *WorkspaceService) DeleteFolder(ctx context.Context, sess domain.Session, id string) error {
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return err
	}

	var target *domain.Folder
	for i := range ws.Folders {
		if ws.Folders[i].ID == id {
			target = &ws.Folders[i]
			break
		}
	}
	if target == nil {
		return nil
	}
	if err := policy.Authorize(sess, policy.ActionDelete, target.Kind); err != nil {
		return err
	}

	for i := range ws.Vehicles {
		if ws.Vehicles[i].FolderID != nil && *ws.Vehicles[i].FolderID == id {
			ws.Vehicles[i].FolderID = nil
		}
	}
	for i := range ws.Clients {
		if ws.Clients[i].FolderID != nil && *ws.Clients[i].FolderID == id {
			ws.Clients[i].FolderID = nil
		}
	}
	for i := range ws.Bills {
		if ws.Bills[i].FolderID != nil && *ws.Bills[i].FolderID == id {
			ws.Bills[i].FolderID = nil
		}
	}

	kept := ws.Folders[:0]
	for _, f := range ws.Folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	ws.Folders = kept

	slog.Debug("folder deleted, members moved to root", "folder_id", id, "username", sess.Username)
	return s.wsRepo.Save(ctx, sess.Username, ws)
}

// MoveEntity assigns an entity to a folder, or back to root when
// folderID is nil.
func (s *WorkspaceService) MoveEntity(ctx context.Context, sess domain.Session, kind domain.EntityKind, id string, folderID *string) error {
	if err := policy.Authorize(sess, policy.ActionUpdate, kind); err != nil {
		return err
	}
	ws, err := s.wsRepo.Load(ctx, sess.Username)
	if err != nil {
		return err
	}
	if err := validateFolderRef(ws, folderID, kind); err != nil {
		return err
	}
	ref := normalizeFolderRef(folderID)

	switch kind {
	case domain.KindVehicle:
		for i := range ws.Vehicles {
			if ws.Vehicles[i].ID == id {
				ws.Vehicles[i].FolderID = ref
				return s.wsRepo.Save(ctx, sess.Username, ws)
			}
		}
		return domain.ErrVehicleNotFound
	case domain.KindClient:
		for i := range ws.Clients {
			if ws.Clients[i].ID == id {
				ws.Clients[i].FolderID = ref
				return s.wsRepo.Save(ctx, sess.Username, ws)
			}
		}
		return domain.ErrClientNotFound
	case domain.KindBill:
		for i := range ws.Bills {
			if ws.Bills[i].ID == id {
				ws.Bills[i].FolderID = ref
				return s.wsRepo.Save(ctx, sess.Username, ws)
			}
		}
		return domain.ErrBillNotFound
	}
	return domain.ErrInvalidInput
}

// normalizeFolderRef collapses the empty string to nil so root is
// always represented the same way in storage.
func normalizeFolderRef(folderID *string) *string {
	if folderID == nil || *folderID == "" {
		return nil
	}
	return folderID
}
