package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type AssignmentFilter struct {
	ContractID    *uuid.UUID
	DeliverableID *uuid.UUID
	StaffID       *uuid.UUID
	LeadOnly      *bool
	Order         *queryx.Ordering
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *model.DeliverableAssignment) error
	Update(ctx context.Context, a *model.DeliverableAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.DeliverableAssignment, error)
	List(ctx context.Context, f AssignmentFilter) ([]model.DeliverableAssignment, error)
}

type assignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepo(db *gorm.DB) AssignmentRepo {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.DeliverableAssignment) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "assignment")
}

func (r *assignmentRepo) Update(ctx context.Context, a *model.DeliverableAssignment) error {
	return translate(r.db.WithContext(ctx).Save(a).Error, "assignment")
}

func (r *assignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.DeliverableAssignment{}, "id = ?", id).Error, "assignment")
}

func (r *assignmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.DeliverableAssignment, error) {
	var a model.DeliverableAssignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err, "assignment")
	}
	return &a, nil
}

func (r *assignmentRepo) List(ctx context.Context, f AssignmentFilter) ([]model.DeliverableAssignment, error) {
	q := r.db.WithContext(ctx).Model(&model.DeliverableAssignment{})
	if f.ContractID != nil {
		q = q.Joins("JOIN deliverables ON deliverables.id = deliverable_assignments.deliverable_id").
			Where("deliverables.contract_id = ?", *f.ContractID)
	}
	if f.DeliverableID != nil {
		q = q.Where("deliverable_assignments.deliverable_id = ?", *f.DeliverableID)
	}
	if f.StaffID != nil {
		q = q.Where("deliverable_assignments.staff_id = ?", *f.StaffID)
	}
	if f.LeadOnly != nil {
		q = q.Where("deliverable_assignments.is_lead = ?", *f.LeadOnly)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("deliverable_assignments.created_at ASC, deliverable_assignments.id ASC")
	}

	var items []model.DeliverableAssignment
	return items, translate(q.Find(&items).Error, "assignment")
}
