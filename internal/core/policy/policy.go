// Package policy implements the role-based access overlay. It is pure:
// given the caller's session and a requested view or action it returns
// allow/deny, with no persisted state of its own. The super-admin
// identity bypasses every role rule.
package policy

import (
	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

// Action describes the kind of operation the caller wants to perform.
type Action string

const (
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionPrint       Action = "print"
	ActionManageUsers Action = "manage_users"
)

// View identifies a navigable section of the application.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewFleet     View = "vehicles"
	ViewClients   View = "clients"
	ViewBills     View = "bills"
	ViewUsers     View = "users"
	ViewSettings  View = "settings"
)

// CanNavigate reports whether the session may open the given view.
// Evaluation order: super-admin first, then the per-role carve-outs.
func CanNavigate(sess domain.Session, view View) bool {
	if sess.IsSuperAdmin {
		return true
	}
	switch sess.Role {
	case domain.RoleBillingOfficer:
		// Fleet management is the one section a billing officer
		// cannot reach.
		return view != ViewFleet && view != ViewSettings
	case domain.RoleAdmin:
		return true
	case domain.RoleAuditor, domain.RoleFleetManager:
		// Every ordinary view is reachable; settings stays an
		// admin affordance.
		return view != ViewSettings
	}
	return false
}

// CanPerform reports whether the session may perform action on entities
// of the given kind. Print stays enabled for auditors as a read-only
// export path; every other mutation is suppressed for them.
func CanPerform(sess domain.Session, action Action, kind domain.EntityKind) bool {
	if sess.IsSuperAdmin {
		return true
	}
	switch action {
	case ActionView, ActionPrint:
		if kind == domain.KindVehicle && sess.Role == domain.RoleBillingOfficer {
			return false
		}
		return true
	case ActionManageUsers:
		return sess.Role == domain.RoleAdmin
	}
	// Remaining actions mutate state.
	switch sess.Role {
	case domain.RoleAuditor:
		return false
	case domain.RoleBillingOfficer:
		return kind != domain.KindVehicle
	case domain.RoleAdmin, domain.RoleFleetManager:
		return true
	}
	return false
}

// Authorize is the error-returning form used by the services: it maps a
// denied check to domain.ErrForbidden so callers can branch on it.
func Authorize(sess domain.Session, action Action, kind domain.EntityKind) error {
	if !CanPerform(sess, action, kind) {
		return domain.ErrForbidden
	}
	return nil
}
