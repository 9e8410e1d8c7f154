package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/queryx"
)

type TaskFilter struct {
	ContractID    *uuid.UUID
	DeliverableID *uuid.UUID
	AssigneeID    *uuid.UUID
	Unassigned    *bool
	Status        string
	Order         *queryx.Ordering
}

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, f TaskFilter) ([]model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return translate(r.db.WithContext(ctx).Create(t).Error, "task")
}

func (r *taskRepo) Update(ctx context.Context, t *model.Task) error {
	return translate(r.db.WithContext(ctx).Save(t).Error, "task")
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id).Error, "task")
}

func (r *taskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var t model.Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err, "task")
	}
	return &t, nil
}

func (r *taskRepo) List(ctx context.Context, f TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if f.ContractID != nil {
		q = q.Joins("JOIN deliverables ON deliverables.id = tasks.deliverable_id").
			Where("deliverables.contract_id = ?", *f.ContractID)
	}
	if f.DeliverableID != nil {
		q = q.Where("tasks.deliverable_id = ?", *f.DeliverableID)
	}
	if f.AssigneeID != nil {
		q = q.Where("tasks.assignee_id = ?", *f.AssigneeID)
	}
	if f.Unassigned != nil {
		if *f.Unassigned {
			q = q.Where("tasks.assignee_id IS NULL")
		} else {
			q = q.Where("tasks.assignee_id IS NOT NULL")
		}
	}
	if f.Status != "" {
		q = q.Where("tasks.status = ?", f.Status)
	}
	if f.Order != nil {
		q = q.Order(f.Order.Clause())
	} else {
		q = q.Order("tasks.created_at ASC, tasks.id ASC")
	}

	var items []model.Task
	return items, translate(q.Find(&items).Error, "task")
}
