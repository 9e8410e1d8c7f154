package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type DeliverableFilter struct {
	ContractID  *uuid.UUID
	Status      string
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	// StaffID keeps deliverables where that staff member is assigned;
	// LeadOnly additionally requires the lead flag on some assignment,
	// HasAssignments requires any assignment at all.
	StaffID        *uuid.UUID
	LeadOnly       *bool
	HasAssignments *bool
	Order          *queryx.Ordering
}

type DeliverableRepo interface {
	Create(ctx context.Context, d *model.Deliverable) error
	Update(ctx context.Context, d *model.Deliverable) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Deliverable, error)
	// GetWithChildren loads the deliverable with its contract and every child
	// collection the rollup engine consumes.
	GetWithChildren(ctx context.Context, id uuid.UUID) (*model.Deliverable, error)
	List(ctx context.Context, f DeliverableFilter) ([]model.Deliverable, error)
	ListWithChildrenByContract(ctx context.Context, contractID uuid.UUID) ([]model.Deliverable, error)
}

type deliverableRepo struct{ db *gorm.DB }

func NewDeliverableRepo(db *gorm.DB) DeliverableRepo {
	return &deliverableRepo{db: db}
}

func (r *deliverableRepo) Create(ctx context.Context, d *model.Deliverable) error {
	return translate(r.db.WithContext(ctx).Create(d).Error, "deliverable")
}

func (r *deliverableRepo) Update(ctx context.Context, d *model.Deliverable) error {
	return translate(r.db.WithContext(ctx).Save(d).Error, "deliverable")
}

func (r *deliverableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.Deliverable{}, "id = ?", id).Error, "deliverable")
}

func (r *deliverableRepo) Get(ctx context.Context, id uuid.UUID) (*model.Deliverable, error) {
	var d model.Deliverable
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err, "deliverable")
	}
	return &d, nil
}

func (r *deliverableRepo) GetWithChildren(ctx context.Context, id uuid.UUID) (*model.Deliverable, error) {
	var d model.Deliverable
	err := r.db.WithContext(ctx).
		Preload("Contract").
		Preload("Tasks").
		Preload("Assignments").
		Preload("TimeEntries").
		Preload("StatusUpdates").
		First(&d, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "deliverable")
	}
	return &d, nil
}

func (r *deliverableRepo) List(ctx context.Context, f DeliverableFilter) ([]model.Deliverable, error) {
	q := r.db.WithContext(ctx).Model(&model.Deliverable{})
	if f.ContractID != nil {
		q = q.Where("contract_id = ?", *f.ContractID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DueDateFrom != nil {
		q = q.Where("due_date >= ?", *f.DueDateFrom)
	}
	if f.DueDateTo != nil {
		q = q.Where("due_date <= ?", *f.DueDateTo)
	}
	if f.StaffID != nil {
		sub := r.db.Model(&model.DeliverableAssignment{}).
			Select("1").
			Where("deliverable_assignments.deliverable_id = deliverables.id").
			Where("deliverable_assignments.staff_id = ?", *f.StaffID)
		if f.LeadOnly != nil && *f.LeadOnly {
			sub = sub.Where("deliverable_assignments.is_lead = TRUE")
		}
		q = q.Where("EXISTS (?)", sub)
	} else if f.LeadOnly != nil {
		sub := r.db.Model(&model.DeliverableAssignment{}).
			Select("1").
			Where("deliverable_assignments.deliverable_id = deliverables.id").
			Where("deliverable_assignments.is_lead = TRUE")
		if *f.LeadOnly {
			q = q.Where("EXISTS (?)", sub)
		} else {
			q = q.Where("NOT EXISTS (?)", sub)
		}
	}
	if f.HasAssignments != nil {
		sub := r.db.Model(&model.DeliverableAssignment{}).
			Select("1").
			Where("deliverable_assignments.deliverable_id = deliverables.id")
		if *f.HasAssignments {
			q = q.Where("EXISTS (?)", sub)
		} else {
			q = q.Where("NOT EXISTS (?)", sub)
		}
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("created_at ASC, id ASC")
	}

	var items []model.Deliverable
	return items, translate(q.Find(&items).Error, "deliverable")
}

func (r *deliverableRepo) ListWithChildrenByContract(ctx context.Context, contractID uuid.UUID) ([]model.Deliverable, error) {
	var items []model.Deliverable
	err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("Assignments").
		Preload("TimeEntries").
		Preload("StatusUpdates").
		Where("contract_id = ?", contractID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, translate(err, "deliverable")
}
