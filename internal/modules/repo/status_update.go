package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type StatusUpdateFilter struct {
	ContractID    *uuid.UUID
	DeliverableID *uuid.UUID
	Status        string
	PeriodEndFrom *time.Time
	PeriodEndTo   *time.Time
	Order         *queryx.Ordering
}

type StatusUpdateRepo interface {
	Create(ctx context.Context, u *model.DeliverableStatusUpdate) error
	Update(ctx context.Context, u *model.DeliverableStatusUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.DeliverableStatusUpdate, error)
	List(ctx context.Context, f StatusUpdateFilter) ([]model.DeliverableStatusUpdate, error)
}

type statusUpdateRepo struct{ db *gorm.DB }

func NewStatusUpdateRepo(db *gorm.DB) StatusUpdateRepo {
	return &statusUpdateRepo{db: db}
}

func (r *statusUpdateRepo) Create(ctx context.Context, u *model.DeliverableStatusUpdate) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "status update")
}

func (r *statusUpdateRepo) Update(ctx context.Context, u *model.DeliverableStatusUpdate) error {
	return translate(r.db.WithContext(ctx).Save(u).Error, "status update")
}

func (r *statusUpdateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.DeliverableStatusUpdate{}, "id = ?", id).Error, "status update")
}

func (r *statusUpdateRepo) Get(ctx context.Context, id uuid.UUID) (*model.DeliverableStatusUpdate, error) {
	var u model.DeliverableStatusUpdate
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "status update")
	}
	return &u, nil
}

func (r *statusUpdateRepo) List(ctx context.Context, f StatusUpdateFilter) ([]model.DeliverableStatusUpdate, error) {
	q := r.db.WithContext(ctx).Model(&model.DeliverableStatusUpdate{})
	if f.ContractID != nil {
		q = q.Joins("JOIN deliverables ON deliverables.id = deliverable_status_updates.deliverable_id").
			Where("deliverables.contract_id = ?", *f.ContractID)
	}
	if f.DeliverableID != nil {
		q = q.Where("deliverable_status_updates.deliverable_id = ?", *f.DeliverableID)
	}
	if f.Status != "" {
		q = q.Where("deliverable_status_updates.status = ?", f.Status)
	}
	if f.PeriodEndFrom != nil {
		q = q.Where("deliverable_status_updates.period_end >= ?", *f.PeriodEndFrom)
	}
	if f.PeriodEndTo != nil {
		q = q.Where("deliverable_status_updates.period_end <= ?", *f.PeriodEndTo)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("deliverable_status_updates.period_end ASC, deliverable_status_updates.id ASC")
	}

	var items []model.DeliverableStatusUpdate
	return items, translate(q.Find(&items).Error, "status update")
}
