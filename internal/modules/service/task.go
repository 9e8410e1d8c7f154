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

type TaskService interface {
	Create(ctx context.Context, actor policy.Actor, t *model.Task) error
	Update(ctx context.Context, actor policy.Actor, t *model.Task) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, actor policy.Actor, f repo.TaskFilter) ([]model.Task, error)
}

type taskService struct {
	tasks        repo.TaskRepo
	deliverables repo.DeliverableRepo
	staff        repo.StaffRepo
}

func NewTaskService(tasks repo.TaskRepo, deliverables repo.DeliverableRepo, staff repo.StaffRepo) TaskService {
	return &taskService{tasks: tasks, deliverables: deliverables, staff: staff}
}

func validateTask(t *model.Task) error {
	if t.DeliverableID == uuid.Nil {
		return errs.Validation("deliverable_id", "is required")
	}
	if t.Title == "" {
		return errs.Validation("title", "is required")
	}
	if t.BudgetHours.LessThan(decimal.Zero) {
		return errs.Validation("budget_hours", "must not be negative")
	}
	switch t.Status {
	case "", model.TaskStatusTodo, model.TaskStatusInProgress, model.TaskStatusDone, model.TaskStatusBlocked:
	default:
		return errs.Validation("status", "must be one of todo, in_progress, done, blocked")
	}
	return nil
}

func (s *taskService) Create(ctx context.Context, actor policy.Actor, t *model.Task) error {
	own := &policy.Ownership{TargetOwnerID: t.AssigneeID, TargetSet: true}
	if err := authorize(actor, policy.ActionCreate, policy.ResourceTask, own); err != nil {
		return err
	}
	if err := validateTask(t); err != nil {
		return err
	}
	if _, err := s.deliverables.Get(ctx, t.DeliverableID); err != nil {
		return err
	}
	if t.AssigneeID != nil {
		if _, err := s.staff.Get(ctx, *t.AssigneeID); err != nil {
			return err
		}
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) Update(ctx context.Context, actor policy.Actor, t *model.Task) error {
	existing, err := s.tasks.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	own := &policy.Ownership{
		OwnerID:       existing.AssigneeID,
		TargetOwnerID: t.AssigneeID,
		TargetSet:     true,
	}
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceTask, own); err != nil {
		return err
	}
	if t.AssigneeID != nil {
		if _, err := s.staff.Get(ctx, *t.AssigneeID); err != nil {
			return err
		}
	}
	existing.AssigneeID = t.AssigneeID
	existing.Title = t.Title
	existing.BudgetHours = t.BudgetHours
	if t.Status != "" {
		existing.Status = t.Status
	}
	if err := validateTask(existing); err != nil {
		return err
	}
	*t = *existing
	return s.tasks.Update(ctx, existing)
}

func (s *taskService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	existing, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	own := &policy.Ownership{OwnerID: existing.AssigneeID}
	if err := authorize(actor, policy.ActionDelete, policy.ResourceTask, own); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Task, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceTask, nil); err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}

func (s *taskService) List(ctx context.Context, actor policy.Actor, f repo.TaskFilter) ([]model.Task, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceTask, nil); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, f)
}
