package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleFleetManager   Role = "FleetManager"
	RoleBillingOfficer Role = "BillingOfficer"
	RoleAuditor        Role = "Auditor"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleFleetManager, RoleBillingOfficer, RoleAuditor:
		return true
	}
	return false
}

// EntityKind is the tagged variant over the three foldered collections.
// Folder and listing operations are parameterized over it instead of
// branching on raw type-name strings.
type EntityKind string

const (
	KindVehicle EntityKind = "vehicle"
	KindClient  EntityKind = "client"
	KindBill    EntityKind = "bill"
)

// ParseEntityKind maps a wire string to an EntityKind.
// Accepts both singular and the legacy plural forms.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch s {
	case "vehicle", "vehicles":
		return KindVehicle, true
	case "client", "clients":
		return KindClient, true
	case "bill", "bills":
		return KindBill, true
	}
	return "", false
}

// User represents a registered account in the domain layer.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	Username string
	Password string
	Role     Role
}

// Session is the authenticated caller's identity, threaded explicitly
// into every store and policy call. IsSuperAdmin short-circuits the
// role-based policy entirely.
type Session struct {
	Username     string
	Role         Role
	IsSuperAdmin bool
}

// Folder is a named grouping label for entities of one kind.
// Purely organizational: deleting a folder moves members to root,
// it never deletes them.
type Folder struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind EntityKind `json:"type"`
}

// Vehicle represents one fleet vehicle.
type Vehicle struct {
	ID          string  `json:"id"`
	CustomID    string  `json:"customId"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Driver      string  `json:"driver"`
	DriverPhone string  `json:"driverPhone"`
	Route       string  `json:"route"`
	Status      string  `json:"status"`
	FolderID    *string `json:"folderId"`
}

// Client represents one customer account.
type Client struct {
	ID       string  `json:"id"`
	CustomID string  `json:"customId"`
	Name     string  `json:"name"`
	Contact  string  `json:"contact"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Status   string  `json:"status"`
	FolderID *string `json:"folderId"`
}

// ServiceLine is one billed service row on an invoice.
type ServiceLine struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Bill represents one invoice. Total is supplied by the caller and
// stored verbatim; the store never recomputes it against Services.
// VehicleID may dangle after a vehicle is deleted; resolution
// substitutes placeholders rather than failing.
type Bill struct {
	ID         string        `json:"id"`
	VehicleID  string        `json:"vehicleId"`
	Client     string        `json:"client"`
	Date       string        `json:"date"`
	Services   []ServiceLine `json:"services"`
	Currency   string        `json:"currency"`
	Additional float64       `json:"additional"`
	Total      float64       `json:"total"`
	Notes      string        `json:"notes"`
	FolderID   *string       `json:"folderId"`
}

// Workspace is the complete set of one user's collections. It is loaded
// wholesale on login and fully overwritten in storage on every mutation.
type Workspace struct {
	Vehicles []Vehicle `json:"vehicles"`
	Bills    []Bill    `json:"bills"`
	Clients  []Client  `json:"clients"`
	Folders  []Folder  `json:"folders"`
}

// EmptyWorkspace returns a workspace with four empty collections.
// Corrupt or absent storage heals to this.
func EmptyWorkspace() *Workspace {
	return &Workspace{
		Vehicles: []Vehicle{},
		Bills:    []Bill{},
		Clients:  []Client{},
		Folders:  []Folder{},
	}
}

// ResolvedBill is the denormalized print snapshot handed to the export
// layer: the bill plus its vehicle's display fields, with placeholders
// when the vehicle no longer exists.
type ResolvedBill struct {
	Bill
	VehicleName     string `json:"vehicleName"`
	VehicleCustomID string `json:"vehicleCustomId"`
	VehicleType     string `json:"vehicleType"`
	VehicleDriver   string `json:"vehicleDriver"`
}
