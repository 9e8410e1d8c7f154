package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
)

// MockTaskRepo is a mock implementation of repo.TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepo) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) List(ctx context.Context, f repo.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func taskFixture(assignee *uuid.UUID) *model.Task {
	return &model.Task{
		ID:            uuid.New(),
		DeliverableID: uuid.New(),
		AssigneeID:    assignee,
		Title:         "Draft findings",
		BudgetHours:   decimal.NewFromInt(8),
		Status:        model.TaskStatusTodo,
	}
}

func newTaskMocks() (*MockTaskRepo, *MockDeliverableRepo, *MockStaffRepo, TaskService) {
	tasks := new(MockTaskRepo)
	deliverables := new(MockDeliverableRepo)
	staff := new(MockStaffRepo)
	return tasks, deliverables, staff, NewTaskService(tasks, deliverables, staff)
}

func TestTaskCreateStaffSelfAssign(t *testing.T) {
	tasks, deliverables, staff, svc := newTaskMocks()
	actor := staffActor(policy.RoleStaff)

	task := taskFixture(&actor.StaffID)
	deliverables.On("Get", mock.Anything, task.DeliverableID).Return(&model.Deliverable{ID: task.DeliverableID}, nil)
	staff.On("Get", mock.Anything, actor.StaffID).Return(&model.Staff{ID: actor.StaffID}, nil)
	tasks.On("Create", mock.Anything, task).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), actor, task))
	tasks.AssertExpectations(t)
}

func TestTaskCreateStaffUnassigned(t *testing.T) {
	tasks, deliverables, _, svc := newTaskMocks()
	actor := staffActor(policy.RoleStaff)

	task := taskFixture(nil)
	deliverables.On("Get", mock.Anything, task.DeliverableID).Return(&model.Deliverable{ID: task.DeliverableID}, nil)
	tasks.On("Create", mock.Anything, task).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), actor, task))
}

func TestTaskCreateStaffCannotAssignOthers(t *testing.T) {
	tasks, _, _, svc := newTaskMocks()
	actor := staffActor(policy.RoleStaff)
	other := uuid.New()

	err := svc.Create(context.Background(), actor, taskFixture(&other))
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskCreateManagerAssignsAnyone(t *testing.T) {
	tasks, deliverables, staff, svc := newTaskMocks()
	actor := staffActor(policy.RoleManager)
	other := uuid.New()

	task := taskFixture(&other)
	deliverables.On("Get", mock.Anything, task.DeliverableID).Return(&model.Deliverable{ID: task.DeliverableID}, nil)
	staff.On("Get", mock.Anything, other).Return(&model.Staff{ID: other}, nil)
	tasks.On("Create", mock.Anything, task).Return(nil)

	assert.NoError(t, svc.Create(context.Background(), actor, task))
}

func TestTaskCreateValidation(t *testing.T) {
	_, _, _, svc := newTaskMocks()
	actor := staffActor(policy.RoleManager)

	task := taskFixture(nil)
	task.Title = ""
	err := svc.Create(context.Background(), actor, task)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "title", errs.FieldOf(err))

	task = taskFixture(nil)
	task.Status = "paused"
	err = svc.Create(context.Background(), actor, task)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestTaskUpdateStaffOwnership(t *testing.T) {
	tasks, _, staff, svc := newTaskMocks()
	actor := staffActor(policy.RoleStaff)
	other := uuid.New()

	// Own task: allowed, keeping self as assignee.
	own := taskFixture(&actor.StaffID)
	tasks.On("Get", mock.Anything, own.ID).Return(own, nil)
	staff.On("Get", mock.Anything, actor.StaffID).Return(&model.Staff{ID: actor.StaffID}, nil)
	tasks.On("Update", mock.Anything, mock.Anything).Return(nil)

	patch := taskFixture(&actor.StaffID)
	patch.ID = own.ID
	patch.DeliverableID = own.DeliverableID
	assert.NoError(t, svc.Update(context.Background(), actor, patch))

	// Someone else's task: denied.
	theirs := taskFixture(&other)
	tasks.On("Get", mock.Anything, theirs.ID).Return(theirs, nil)
	patch = taskFixture(&other)
	patch.ID = theirs.ID
	err := svc.Update(context.Background(), actor, patch)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
}

func TestTaskUpdateStaffCannotReassign(t *testing.T) {
	tasks, _, _, svc := newTaskMocks()
	actor := staffActor(policy.RoleStaff)
	other := uuid.New()

	own := taskFixture(&actor.StaffID)
	tasks.On("Get", mock.Anything, own.ID).Return(own, nil)

	patch := taskFixture(&other)
	patch.ID = own.ID
	err := svc.Update(context.Background(), actor, patch)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskDeleteUnassignedNeedsManager(t *testing.T) {
	tasks, _, _, svc := newTaskMocks()

	task := taskFixture(nil)
	tasks.On("Get", mock.Anything, task.ID).Return(task, nil)

	err := svc.Delete(context.Background(), staffActor(policy.RoleStaff), task.ID)
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))

	tasks.On("Delete", mock.Anything, task.ID).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), staffActor(policy.RoleManager), task.ID))
}
