package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type TimeEntryFilter struct {
	ContractID    *uuid.UUID
	DeliverableID *uuid.UUID
	StaffID       *uuid.UUID
	EntryDateFrom *time.Time
	EntryDateTo   *time.Time
	Order         *queryx.Ordering
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *model.DeliverableTimeEntry) error
	Update(ctx context.Context, e *model.DeliverableTimeEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.DeliverableTimeEntry, error)
	// GetByExternalKey returns the entry carrying the idempotency pair, or a
	// not-found error.
	GetByExternalKey(ctx context.Context, source, externalID string) (*model.DeliverableTimeEntry, error)
	List(ctx context.Context, f TimeEntryFilter) ([]model.DeliverableTimeEntry, error)
}

type timeEntryRepo struct{ db *gorm.DB }

func NewTimeEntryRepo(db *gorm.DB) TimeEntryRepo {
	return &timeEntryRepo{db: db}
}

func (r *timeEntryRepo) Create(ctx context.Context, e *model.DeliverableTimeEntry) error {
	return translate(r.db.WithContext(ctx).Create(e).Error, "time entry")
}

func (r *timeEntryRepo) Update(ctx context.Context, e *model.DeliverableTimeEntry) error {
	return translate(r.db.WithContext(ctx).Save(e).Error, "time entry")
}

func (r *timeEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.DeliverableTimeEntry{}, "id = ?", id).Error, "time entry")
}

func (r *timeEntryRepo) Get(ctx context.Context, id uuid.UUID) (*model.DeliverableTimeEntry, error) {
	var e model.DeliverableTimeEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err, "time entry")
	}
	return &e, nil
}

func (r *timeEntryRepo) GetByExternalKey(ctx context.Context, source, externalID string) (*model.DeliverableTimeEntry, error) {
	var e model.DeliverableTimeEntry
	err := r.db.WithContext(ctx).
		Where("external_source = ? AND external_id = ?", source, externalID).
		First(&e).Error
	if err != nil {
		return nil, translate(err, "time entry")
	}
	return &e, nil
}

func (r *timeEntryRepo) List(ctx context.Context, f TimeEntryFilter) ([]model.DeliverableTimeEntry, error) {
	q := r.db.WithContext(ctx).Model(&model.DeliverableTimeEntry{})
	if f.ContractID != nil {
		q = q.Joins("JOIN deliverables ON deliverables.id = deliverable_time_entries.deliverable_id").
			Where("deliverables.contract_id = ?", *f.ContractID)
	}
	if f.DeliverableID != nil {
		q = q.Where("deliverable_time_entries.deliverable_id = ?", *f.DeliverableID)
	}
	if f.StaffID != nil {
		q = q.Where("deliverable_time_entries.staff_id = ?", *f.StaffID)
	}
	if f.EntryDateFrom != nil {
		q = q.Where("deliverable_time_entries.entry_date >= ?", *f.EntryDateFrom)
	}
	if f.EntryDateTo != nil {
		q = q.Where("deliverable_time_entries.entry_date <= ?", *f.EntryDateTo)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("deliverable_time_entries.entry_date ASC, deliverable_time_entries.id ASC")
	}

	var items []model.DeliverableTimeEntry
	return items, translate(q.Find(&items).Error, "time entry")
}
