package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func actor(role Role) Actor {
	return Actor{Authenticated: true, HasProfile: true, StaffID: uuid.New(), Role: role}
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleManager))
	assert.True(t, RoleManager.AtLeast(RoleStaff))
	assert.True(t, RoleStaff.AtLeast(RoleStaff))
	assert.False(t, RoleStaff.AtLeast(RoleManager))
	assert.False(t, RoleManager.AtLeast(RoleAdmin))
	// Unknown roles rank below everything.
	assert.False(t, Role("intern").AtLeast(RoleStaff))
}

func TestAuthorizeIdentityGates(t *testing.T) {
	d := Authorize(Actor{}, ActionRead, ResourceContract, nil)
	assert.False(t, d.Allow)
	assert.Equal(t, DenyUnauthenticated, d.Reason)

	d = Authorize(Actor{Authenticated: true}, ActionRead, ResourceContract, nil)
	assert.False(t, d.Allow)
	assert.Equal(t, DenyNoProfile, d.Reason)

	// The two deny reasons must stay distinguishable.
	assert.NotEqual(t, DenyUnauthenticated.String(), DenyNoProfile.String())
}

func TestAuthorizeReadsOpenToAllProfiles(t *testing.T) {
	for _, role := range []Role{RoleStaff, RoleManager, RoleAdmin} {
		for _, res := range []Resource{
			ResourceStaff, ResourceContract, ResourceDeliverable,
			ResourceAssignment, ResourceTask, ResourceTimeEntry, ResourceStatusUpdate,
		} {
			d := Authorize(actor(role), ActionRead, res, nil)
			assert.True(t, d.Allow, "role=%s res=%s", role, res)
		}
	}
}

func TestAuthorizeWriteTable(t *testing.T) {
	tests := []struct {
		res     Resource
		role    Role
		allowed bool
	}{
		{ResourceStaff, RoleAdmin, true},
		{ResourceStaff, RoleManager, false},
		{ResourceStaff, RoleStaff, false},

		{ResourceContract, RoleAdmin, true},
		{ResourceContract, RoleManager, true},
		{ResourceContract, RoleStaff, false},

		{ResourceDeliverable, RoleManager, true},
		{ResourceDeliverable, RoleStaff, false},

		{ResourceAssignment, RoleManager, true},
		{ResourceAssignment, RoleStaff, false},

		{ResourceStatusUpdate, RoleManager, true},
		{ResourceStatusUpdate, RoleStaff, false},
	}
	for _, tt := range tests {
		d := Authorize(actor(tt.role), ActionUpdate, tt.res, nil)
		assert.Equal(t, tt.allowed, d.Allow, "res=%s role=%s", tt.res, tt.role)
		if !tt.allowed {
			assert.Equal(t, DenyRole, d.Reason)
		}
	}
}

func TestAuthorizeStaffTask(t *testing.T) {
	a := actor(RoleStaff)
	other := uuid.New()

	// Create unassigned.
	d := Authorize(a, ActionCreate, ResourceTask, &Ownership{TargetSet: true})
	assert.True(t, d.Allow)

	// Create assigned to self.
	d = Authorize(a, ActionCreate, ResourceTask, &Ownership{TargetOwnerID: &a.StaffID, TargetSet: true})
	assert.True(t, d.Allow)

	// Create assigned to someone else.
	d = Authorize(a, ActionCreate, ResourceTask, &Ownership{TargetOwnerID: &other, TargetSet: true})
	assert.False(t, d.Allow)
	assert.Equal(t, DenyNotOwner, d.Reason)

	// Update own task.
	d = Authorize(a, ActionUpdate, ResourceTask, &Ownership{OwnerID: &a.StaffID})
	assert.True(t, d.Allow)

	// Update own task but reassign it away.
	d = Authorize(a, ActionUpdate, ResourceTask, &Ownership{OwnerID: &a.StaffID, TargetOwnerID: &other, TargetSet: true})
	assert.False(t, d.Allow)

	// Update someone else's task.
	d = Authorize(a, ActionUpdate, ResourceTask, &Ownership{OwnerID: &other})
	assert.False(t, d.Allow)
	assert.Equal(t, DenyNotOwner, d.Reason)

	// Delete an unassigned task.
	d = Authorize(a, ActionDelete, ResourceTask, &Ownership{})
	assert.False(t, d.Allow)

	// Managers bypass ownership entirely.
	d = Authorize(actor(RoleManager), ActionUpdate, ResourceTask, &Ownership{OwnerID: &other, TargetOwnerID: &other, TargetSet: true})
	assert.True(t, d.Allow)
}

func TestAuthorizeStaffTimeEntry(t *testing.T) {
	a := actor(RoleStaff)
	other := uuid.New()

	// Create is always allowed; the service pins the entry to the requester.
	d := Authorize(a, ActionCreate, ResourceTimeEntry, nil)
	assert.True(t, d.Allow)

	d = Authorize(a, ActionUpdate, ResourceTimeEntry, &Ownership{OwnerID: &a.StaffID})
	assert.True(t, d.Allow)

	d = Authorize(a, ActionUpdate, ResourceTimeEntry, &Ownership{OwnerID: &other})
	assert.False(t, d.Allow)
	assert.Equal(t, DenyNotOwner, d.Reason)

	d = Authorize(a, ActionDelete, ResourceTimeEntry, &Ownership{OwnerID: &other})
	assert.False(t, d.Allow)

	d = Authorize(a, ActionDelete, ResourceTimeEntry, nil)
	assert.False(t, d.Allow)
}

func TestHigherRoleNeverLosesAccess(t *testing.T) {
	// Whatever staff can do, manager and admin can do too.
	own := &Ownership{}
	for _, res := range []Resource{
		ResourceContract, ResourceDeliverable, ResourceAssignment,
		ResourceTask, ResourceTimeEntry, ResourceStatusUpdate,
	} {
		for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
			if Authorize(actor(RoleStaff), action, res, own).Allow {
				assert.True(t, Authorize(actor(RoleManager), action, res, own).Allow, "res=%s", res)
			}
			if Authorize(actor(RoleManager), action, res, own).Allow {
				assert.True(t, Authorize(actor(RoleAdmin), action, res, own).Allow, "res=%s", res)
			}
		}
	}
}
