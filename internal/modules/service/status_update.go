package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

type StatusUpdateService interface {
	Create(ctx context.Context, actor policy.Actor, u *model.DeliverableStatusUpdate) error
	Update(ctx context.Context, actor policy.Actor, u *model.DeliverableStatusUpdate) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableStatusUpdate, error)
	List(ctx context.Context, actor policy.Actor, f repo.StatusUpdateFilter) ([]model.DeliverableStatusUpdate, error)
}

type statusUpdateService struct {
	updates      repo.StatusUpdateRepo
	deliverables repo.DeliverableRepo
}

func NewStatusUpdateService(updates repo.StatusUpdateRepo, deliverables repo.DeliverableRepo) StatusUpdateService {
	return &statusUpdateService{updates: updates, deliverables: deliverables}
}

func validateStatusUpdate(u *model.DeliverableStatusUpdate) error {
	if u.DeliverableID == uuid.Nil {
		return errs.Validation("deliverable_id", "is required")
	}
	if u.PeriodEnd.IsZero() {
		return errs.Validation("period_end", "is required")
	}
	switch u.Status {
	case model.StatusUpdateOnTrack, model.StatusUpdateAtRisk, model.StatusUpdateOffTrack, model.StatusUpdateComplete:
	default:
		return errs.Validation("status", "must be one of on_track, at_risk, off_track, complete")
	}
	return nil
}

func (s *statusUpdateService) Create(ctx context.Context, actor policy.Actor, u *model.DeliverableStatusUpdate) error {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceStatusUpdate, nil); err != nil {
		return err
	}
	if err := validateStatusUpdate(u); err != nil {
		return err
	}
	if _, err := s.deliverables.Get(ctx, u.DeliverableID); err != nil {
		return err
	}
	if u.CreatedByID == nil && actor.StaffID != uuid.Nil {
		id := actor.StaffID
		u.CreatedByID = &id
	}
	// Duplicate (deliverable, period_end) surfaces as a conflict via the
	// unique index.
	return s.updates.Create(ctx, u)
}

func (s *statusUpdateService) Update(ctx context.Context, actor policy.Actor, u *model.DeliverableStatusUpdate) error {
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceStatusUpdate, nil); err != nil {
		return err
	}
	existing, err := s.updates.Get(ctx, u.ID)
	if err != nil {
		return err
	}
	existing.PeriodEnd = u.PeriodEnd
	existing.Status = u.Status
	existing.Summary = u.Summary
	if err := validateStatusUpdate(existing); err != nil {
		return err
	}
	*u = *existing
	return s.updates.Update(ctx, existing)
}

func (s *statusUpdateService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := authorize(actor, policy.ActionDelete, policy.ResourceStatusUpdate, nil); err != nil {
		return err
	}
	if _, err := s.updates.Get(ctx, id); err != nil {
		return err
	}
	return s.updates.Delete(ctx, id)
}

func (s *statusUpdateService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableStatusUpdate, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceStatusUpdate, nil); err != nil {
		return nil, err
	}
	return s.updates.Get(ctx, id)
}

func (s *statusUpdateService) List(ctx context.Context, actor policy.Actor, f repo.StatusUpdateFilter) ([]model.DeliverableStatusUpdate, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceStatusUpdate, nil); err != nil {
		return nil, err
	}
	return s.updates.List(ctx, f)
}
