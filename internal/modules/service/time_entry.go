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

// CreateTimeEntryResult distinguishes a fresh insert from an idempotent
// replay that returned the already-stored entry.
type CreateTimeEntryResult struct {
	Entry   *model.DeliverableTimeEntry
	Created bool
}

type TimeEntryService interface {
	Create(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) (*CreateTimeEntryResult, error)
	Update(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableTimeEntry, error)
	List(ctx context.Context, actor policy.Actor, f repo.TimeEntryFilter) ([]model.DeliverableTimeEntry, error)
}

type timeEntryService struct {
	entries      repo.TimeEntryRepo
	deliverables repo.DeliverableRepo
	staff        repo.StaffRepo
}

func NewTimeEntryService(entries repo.TimeEntryRepo, deliverables repo.DeliverableRepo, staff repo.StaffRepo) TimeEntryService {
	return &timeEntryService{entries: entries, deliverables: deliverables, staff: staff}
}

func validateTimeEntry(e *model.DeliverableTimeEntry) error {
	if e.DeliverableID == uuid.Nil {
		return errs.Validation("deliverable_id", "is required")
	}
	if e.EntryDate.IsZero() {
		return errs.Validation("entry_date", "is required")
	}
	if !e.Hours.GreaterThan(decimal.Zero) {
		return errs.Validation("hours", "must be greater than zero")
	}
	if e.ExternalSource != "" && e.ExternalID == "" {
		return errs.Validation("external_id", "required when external_source is set")
	}
	if e.ExternalID != "" && e.ExternalSource == "" {
		return errs.Validation("external_source", "required when external_id is set")
	}
	return nil
}

// Create inserts a time entry with idempotent-replay semantics: when the
// (external_source, external_id) pair is present and an entry with that pair
// exists, the stored entry is returned untouched. The partial unique index is
// the backstop for the check-then-insert race; losing that race means an
// equivalent concurrent request won, so the lookup is retried once.
func (s *timeEntryService) Create(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) (*CreateTimeEntryResult, error) {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceTimeEntry, nil); err != nil {
		return nil, err
	}
	if err := validateTimeEntry(e); err != nil {
		return nil, err
	}
	if _, err := s.deliverables.Get(ctx, e.DeliverableID); err != nil {
		return nil, err
	}

	// Staff always log as themselves, whatever the payload claimed.
	if actor.Role == policy.RoleStaff {
		e.StaffID = actor.StaffID
	}
	if e.StaffID == uuid.Nil {
		e.StaffID = actor.StaffID
	}
	if _, err := s.staff.Get(ctx, e.StaffID); err != nil {
		return nil, err
	}

	if e.HasExternalKey() {
		existing, err := s.entries.GetByExternalKey(ctx, e.ExternalSource, e.ExternalID)
		if err == nil {
			return &CreateTimeEntryResult{Entry: existing, Created: false}, nil
		}
		if errs.KindOf(err) != errs.KindNotFound {
			return nil, err
		}
	}

	if err := s.entries.Create(ctx, e); err != nil {
		if e.HasExternalKey() && repo.IsUniqueViolation(err) {
			existing, lookupErr := s.entries.GetByExternalKey(ctx, e.ExternalSource, e.ExternalID)
			if lookupErr == nil {
				return &CreateTimeEntryResult{Entry: existing, Created: false}, nil
			}
		}
		return nil, err
	}
	return &CreateTimeEntryResult{Entry: e, Created: true}, nil
}

func (s *timeEntryService) Update(ctx context.Context, actor policy.Actor, e *model.DeliverableTimeEntry) error {
	existing, err := s.entries.Get(ctx, e.ID)
	if err != nil {
		return err
	}
	own := &policy.Ownership{OwnerID: &existing.StaffID}
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceTimeEntry, own); err != nil {
		return err
	}
	existing.EntryDate = e.EntryDate
	existing.Hours = e.Hours
	existing.Note = e.Note
	// Ownership never moves on update for the staff role; managers may
	// reassign the entry to another staff member.
	if actor.Role != policy.RoleStaff && e.StaffID != uuid.Nil {
		existing.StaffID = e.StaffID
	}
	if err := validateTimeEntry(existing); err != nil {
		return err
	}
	*e = *existing
	return s.entries.Update(ctx, existing)
}

func (s *timeEntryService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	existing, err := s.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	own := &policy.Ownership{OwnerID: &existing.StaffID}
	if err := authorize(actor, policy.ActionDelete, policy.ResourceTimeEntry, own); err != nil {
		return err
	}
	return s.entries.Delete(ctx, id)
}

func (s *timeEntryService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.DeliverableTimeEntry, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceTimeEntry, nil); err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, id)
}

func (s *timeEntryService) List(ctx context.Context, actor policy.Actor, f repo.TimeEntryFilter) ([]model.DeliverableTimeEntry, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceTimeEntry, nil); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, f)
}
