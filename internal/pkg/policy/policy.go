// Package policy holds the role and ownership authorization rules as one
// auditable decision table. Authorize is a pure function: identity arrives as
// an explicit Actor, never as ambient request state.
package policy

import "github.com/google/uuid"

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// rank orders roles by ascending privilege. Unknown roles rank below staff.
func (r Role) rank() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

func (r Role) AtLeast(min Role) bool { return r.rank() >= min.rank() }

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) write() bool { return a != ActionRead }

type Resource string

const (
	ResourceStaff        Resource = "staff"
	ResourceContract     Resource = "contract"
	ResourceDeliverable  Resource = "deliverable"
	ResourceAssignment   Resource = "assignment"
	ResourceTask         Resource = "task"
	ResourceTimeEntry    Resource = "time_entry"
	ResourceStatusUpdate Resource = "status_update"
)

// Actor is the resolved identity triple for one request.
type Actor struct {
	Authenticated bool
	// HasProfile is false for an authenticated principal with no linked Staff
	// row; that case gets its own deny reason so provisioning problems are
	// never mistaken for authorization failures.
	HasProfile bool
	StaffID    uuid.UUID
	Role       Role
}

// Ownership describes the record (and, for writes that set an owner, the
// requested owner) the action touches. Nil pointers mean "unowned".
type Ownership struct {
	// OwnerID is the record's current owner: a task's assignee, a time
	// entry's staff.
	OwnerID *uuid.UUID
	// TargetOwnerID is the owner the payload asks for, when it asks at all.
	TargetOwnerID *uuid.UUID
	// TargetSet distinguishes "payload omitted the owner field" from
	// "payload explicitly set it to null".
	TargetSet bool
}

type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyUnauthenticated
	DenyNoProfile
	DenyRole
	DenyNotOwner
)

func (r DenyReason) String() string {
	switch r {
	case DenyUnauthenticated:
		return "authentication required"
	case DenyNoProfile:
		return "authenticated user is not linked to a staff profile"
	case DenyRole:
		return "insufficient role"
	case DenyNotOwner:
		return "not the owner of this record"
	}
	return ""
}

type Decision struct {
	Allow  bool
	Reason DenyReason
}

func allow() Decision            { return Decision{Allow: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// writeRule is one row of the policy table for write actions. Reads are
// uniformly open to any staff-profile holder.
type writeRule struct {
	// minRole writes unconditionally.
	minRole Role
	// staffOwned, when true, lets the staff role write subject to the
	// ownership check for the resource.
	staffOwned bool
}

var writeRules = map[Resource]writeRule{
	ResourceStaff:        {minRole: RoleAdmin},
	ResourceContract:     {minRole: RoleManager},
	ResourceDeliverable:  {minRole: RoleManager},
	ResourceAssignment:   {minRole: RoleManager},
	ResourceStatusUpdate: {minRole: RoleManager},
	ResourceTask:         {minRole: RoleManager, staffOwned: true},
	ResourceTimeEntry:    {minRole: RoleManager, staffOwned: true},
}

// Authorize evaluates one (actor, action, resource) request against the
// policy table. Ownership may be nil for resources without ownership rules.
func Authorize(a Actor, action Action, res Resource, own *Ownership) Decision {
	if !a.Authenticated {
		return deny(DenyUnauthenticated)
	}
	if !a.HasProfile {
		return deny(DenyNoProfile)
	}
	if !action.write() {
		return allow()
	}

	rule, ok := writeRules[res]
	if !ok {
		return deny(DenyRole)
	}
	if a.Role.AtLeast(rule.minRole) {
		return allow()
	}
	if !rule.staffOwned || a.Role != RoleStaff {
		return deny(DenyRole)
	}

	switch res {
	case ResourceTask:
		return authorizeStaffTask(a, action, own)
	case ResourceTimeEntry:
		return authorizeStaffTimeEntry(a, action, own)
	}
	return deny(DenyRole)
}

// Staff may create tasks left unassigned or assigned to themselves, and may
// update/delete only tasks currently assigned to them. Reassigning a task to
// someone else is never allowed at this role.
func authorizeStaffTask(a Actor, action Action, own *Ownership) Decision {
	if own == nil {
		own = &Ownership{}
	}
	if action != ActionCreate {
		if own.OwnerID == nil || *own.OwnerID != a.StaffID {
			return deny(DenyNotOwner)
		}
	}
	if own.TargetSet && own.TargetOwnerID != nil && *own.TargetOwnerID != a.StaffID {
		return deny(DenyNotOwner)
	}
	return allow()
}

// Staff may always create time entries (the service forces the entry onto the
// requester regardless of payload) but may only modify their own.
func authorizeStaffTimeEntry(a Actor, action Action, own *Ownership) Decision {
	if action == ActionCreate {
		return allow()
	}
	if own == nil || own.OwnerID == nil || *own.OwnerID != a.StaffID {
		return deny(DenyNotOwner)
	}
	return allow()
}
