package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
	"github.com/harborline/stafftrack/internal/pkg/rollup"
)

type DeliverableWithRollup struct {
	model.Deliverable
	Rollup rollup.DeliverableRollup `json:"rollup"`
}

type ListDeliverablesInput struct {
	repo.DeliverableFilter
	// Computed-health filters, applied after the storage-side filters.
	OverExpected    *bool
	MissingLead     *bool
	MissingEstimate *bool
}

type DeliverableService interface {
	Create(ctx context.Context, actor policy.Actor, d *model.Deliverable) error
	Update(ctx context.Context, actor policy.Actor, d *model.Deliverable) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*DeliverableWithRollup, error)
	List(ctx context.Context, actor policy.Actor, in ListDeliverablesInput) ([]DeliverableWithRollup, error)
}

type deliverableService struct {
	deliverables repo.DeliverableRepo
	contracts    repo.ContractRepo
	basis        rollup.Basis
	now          func() time.Time
}

func NewDeliverableService(deliverables repo.DeliverableRepo, contracts repo.ContractRepo, basis rollup.Basis) DeliverableService {
	return &deliverableService{
		deliverables: deliverables,
		contracts:    contracts,
		basis:        basis,
		now:          time.Now,
	}
}

func validateDeliverable(d *model.Deliverable) error {
	if d.ContractID == uuid.Nil {
		return errs.Validation("contract_id", "is required")
	}
	if d.StartDate != nil && d.DueDate != nil && d.DueDate.Before(*d.StartDate) {
		return errs.Validation("due_date", "must not be before start_date")
	}
	if d.BudgetHours.LessThan(decimal.Zero) {
		return errs.Validation("budget_hours", "must not be negative")
	}
	switch d.Status {
	case "", model.DeliverableStatusPlanned, model.DeliverableStatusInProgress,
		model.DeliverableStatusComplete, model.DeliverableStatusBlocked:
	default:
		return errs.Validation("status", "must be one of planned, in_progress, complete, blocked")
	}
	return nil
}

func (s *deliverableService) Create(ctx context.Context, actor policy.Actor, d *model.Deliverable) error {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceDeliverable, nil); err != nil {
		return err
	}
	if err := validateDeliverable(d); err != nil {
		return err
	}
	// Surface a missing parent as not-found, never as a raw FK violation.
	if _, err := s.contracts.Get(ctx, d.ContractID); err != nil {
		return err
	}
	return s.deliverables.Create(ctx, d)
}

func (s *deliverableService) Update(ctx context.Context, actor policy.Actor, d *model.Deliverable) error {
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceDeliverable, nil); err != nil {
		return err
	}
	if err := validateDeliverable(d); err != nil {
		return err
	}
	existing, err := s.deliverables.Get(ctx, d.ID)
	if err != nil {
		return err
	}
	existing.Name = d.Name
	existing.ChargeCode = d.ChargeCode
	existing.BudgetHours = d.BudgetHours
	existing.StartDate = d.StartDate
	existing.DueDate = d.DueDate
	if d.Status != "" {
		existing.Status = d.Status
	}
	*d = *existing
	return s.deliverables.Update(ctx, existing)
}

func (s *deliverableService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := authorize(actor, policy.ActionDelete, policy.ResourceDeliverable, nil); err != nil {
		return err
	}
	if _, err := s.deliverables.Get(ctx, id); err != nil {
		return err
	}
	return s.deliverables.Delete(ctx, id)
}

func (s *deliverableService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*DeliverableWithRollup, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceDeliverable, nil); err != nil {
		return nil, err
	}
	d, err := s.deliverables.GetWithChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	r := rollup.ComputeDeliverable(deliverableFacts(d, d.Contract), s.basis, s.now())
	return &DeliverableWithRollup{Deliverable: *d, Rollup: r}, nil
}

func (s *deliverableService) List(ctx context.Context, actor policy.Actor, in ListDeliverablesInput) ([]DeliverableWithRollup, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceDeliverable, nil); err != nil {
		return nil, err
	}
	rows, err := s.deliverables.List(ctx, in.DeliverableFilter)
	if err != nil {
		return nil, err
	}

	out := make([]DeliverableWithRollup, 0, len(rows))
	for i := range rows {
		// Rollups need the children, so each row is reloaded in full. Reads
		// recompute from source rows every time; no cache sits in front.
		d, err := s.deliverables.GetWithChildren(ctx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		r := rollup.ComputeDeliverable(deliverableFacts(d, d.Contract), s.basis, s.now())

		if in.OverExpected != nil && r.IsOverExpected != *in.OverExpected {
			continue
		}
		if in.MissingLead != nil && r.IsMissingLead != *in.MissingLead {
			continue
		}
		if in.MissingEstimate != nil && r.IsMissingEstimate != *in.MissingEstimate {
			continue
		}
		out = append(out, DeliverableWithRollup{Deliverable: *d, Rollup: r})
	}
	return out, nil
}
