package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

type AssignmentService interface {
	Create(ctx context.Context, actor policy.Actor, a *model.DeliverableAssignment) error
	Update(ctx context.Context, actor policy.Actor, a *model.DeliverableAssignment) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableAssignment, error)
	List(ctx context.Context, actor policy.Actor, f repo.AssignmentFilter) ([]model.DeliverableAssignment, error)
}

type assignmentService struct {
	assignments  repo.AssignmentRepo
	deliverables repo.DeliverableRepo
	staff        repo.StaffRepo
}

func NewAssignmentService(assignments repo.AssignmentRepo, deliverables repo.DeliverableRepo, staff repo.StaffRepo) AssignmentService {
	return &assignmentService{assignments: assignments, deliverables: deliverables, staff: staff}
}

func validateAssignment(a *model.DeliverableAssignment) error {
	if a.DeliverableID == uuid.Nil {
		return errs.Validation("deliverable_id", "is required")
	}
	if a.StaffID == uuid.Nil {
		return errs.Validation("staff_id", "is required")
	}
	if a.BudgetHours.LessThan(decimal.Zero) {
		return errs.Validation("budget_hours", "must not be negative")
	}
	return nil
}

func (s *assignmentService) Create(ctx context.Context, actor policy.Actor, a *model.DeliverableAssignment) error {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceAssignment, nil); err != nil {
		return err
	}
	if err := validateAssignment(a); err != nil {
		return err
	}
	if _, err := s.deliverables.Get(ctx, a.DeliverableID); err != nil {
		return err
	}
	if _, err := s.staff.Get(ctx, a.StaffID); err != nil {
		return err
	}
	// The unique (deliverable, staff) index turns a duplicate into a conflict.
	return s.assignments.Create(ctx, a)
}

func (s *assignmentService) Update(ctx context.Context, actor policy.Actor, a *model.DeliverableAssignment) error {
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceAssignment, nil); err != nil {
		return err
	}
	existing, err := s.assignments.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	existing.BudgetHours = a.BudgetHours
	existing.IsLead = a.IsLead
	if err := validateAssignment(existing); err != nil {
		return err
	}
	*a = *existing
	return s.assignments.Update(ctx, existing)
}

func (s *assignmentService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := authorize(actor, policy.ActionDelete, policy.ResourceAssignment, nil); err != nil {
		return err
	}
	if _, err := s.assignments.Get(ctx, id); err != nil {
		return err
	}
	return s.assignments.Delete(ctx, id)
}

func (s *assignmentService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableAssignment, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceAssignment, nil); err != nil {
		return nil, err
	}
	return s.assignments.Get(ctx, id)
}

func (s *assignmentService) List(ctx context.Context, actor policy.Actor, f repo.AssignmentFilter) ([]model.DeliverableAssignment, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceAssignment, nil); err != nil {
		return nil, err
	}
	return s.assignments.List(ctx, f)
}
