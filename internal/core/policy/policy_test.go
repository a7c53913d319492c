package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfgroup730-cmyk/MF-Accounting-App/internal/core/domain"
)

func sess(role domain.Role) domain.Session {
	return domain.Session{Username: "tester", Role: role}
}

func TestSuperAdminOverridesEverything(t *testing.T) {
	s := domain.Session{Username: "root", Role: domain.RoleAuditor, IsSuperAdmin: true}

	for _, v := range []View{ViewDashboard, ViewFleet, ViewClients, ViewBills, ViewUsers, ViewSettings} {
		assert.True(t, CanNavigate(s, v), "view %s", v)
	}
	for _, a := range []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionPrint, ActionManageUsers} {
		assert.True(t, CanPerform(s, a, domain.KindVehicle), "action %s", a)
	}
}

func TestBillingOfficerFleetCarveOut(t *testing.T) {
	s := sess(domain.RoleBillingOfficer)

	assert.False(t, CanNavigate(s, ViewFleet))
	assert.True(t, CanNavigate(s, ViewBills))
	assert.True(t, CanNavigate(s, ViewClients))

	// Full mutation rights outside the fleet section.
	assert.True(t, CanPerform(s, ActionCreate, domain.KindBill))
	assert.True(t, CanPerform(s, ActionDelete, domain.KindClient))
	assert.False(t, CanPerform(s, ActionCreate, domain.KindVehicle))
	assert.False(t, CanPerform(s, ActionView, domain.KindVehicle))
}

func TestAuditorIsReadOnlyExceptPrint(t *testing.T) {
	s := sess(domain.RoleAuditor)

	for _, v := range []View{ViewDashboard, ViewFleet, ViewClients, ViewBills, ViewUsers} {
		assert.True(t, CanNavigate(s, v), "view %s", v)
	}
	for _, k := range []domain.EntityKind{domain.KindVehicle, domain.KindClient, domain.KindBill} {
		assert.True(t, CanPerform(s, ActionView, k))
		assert.True(t, CanPerform(s, ActionPrint, k))
		assert.False(t, CanPerform(s, ActionCreate, k))
		assert.False(t, CanPerform(s, ActionUpdate, k))
		assert.False(t, CanPerform(s, ActionDelete, k))
	}
}

func TestAdminManagesUsers(t *testing.T) {
	assert.True(t, CanPerform(sess(domain.RoleAdmin), ActionManageUsers, ""))
	assert.False(t, CanPerform(sess(domain.RoleFleetManager), ActionManageUsers, ""))
	assert.False(t, CanPerform(sess(domain.RoleBillingOfficer), ActionManageUsers, ""))
	assert.False(t, CanPerform(sess(domain.RoleAuditor), ActionManageUsers, ""))
}

func TestFleetManagerHasNoExtraRestriction(t *testing.T) {
	s := sess(domain.RoleFleetManager)

	assert.True(t, CanNavigate(s, ViewFleet))
	assert.True(t, CanPerform(s, ActionCreate, domain.KindVehicle))
	assert.True(t, CanPerform(s, ActionDelete, domain.KindBill))
	assert.False(t, CanNavigate(s, ViewSettings))
}

func TestAuthorizeMapsDenialToForbidden(t *testing.T) {
	err := Authorize(sess(domain.RoleAuditor), ActionDelete, domain.KindVehicle)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.NoError(t, Authorize(sess(domain.RoleAdmin), ActionDelete, domain.KindVehicle))
}
