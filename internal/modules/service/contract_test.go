package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/errs"
	"github.com/harborline/stafftrack/internal/pkg/policy"
	"github.com/harborline/stafftrack/internal/pkg/rollup"
)

// MockContractRepo is a mock implementation of repo.ContractRepo
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *model.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepo) Update(ctx context.Context, c *model.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContractRepo) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contract), args.Error(1)
}

func (m *MockContractRepo) List(ctx context.Context, f repo.ContractFilter) ([]model.Contract, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contract), args.Error(1)
}

func (m *MockContractRepo) HasDeliverables(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func contractFixture() *model.Contract {
	return &model.Contract{
		ID:          uuid.New(),
		Name:        "Platform rebuild",
		ClientName:  "Harborline",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		BudgetHours: decimal.NewFromInt(400),
		Status:      model.ContractStatusActive,
	}
}

func newContractMocks() (*MockContractRepo, *MockDeliverableRepo, ContractService) {
	contracts := new(MockContractRepo)
	deliverables := new(MockDeliverableRepo)
	return contracts, deliverables, NewContractService(contracts, deliverables, rollup.BasisTasks)
}

func TestContractCreateValidation(t *testing.T) {
	_, _, svc := newContractMocks()
	actor := staffActor(policy.RoleManager)

	c := contractFixture()
	c.EndDate = c.StartDate.AddDate(0, 0, -1)
	err := svc.Create(context.Background(), actor, c)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "end_date", errs.FieldOf(err))

	c = contractFixture()
	c.BudgetHours = decimal.NewFromInt(-10)
	err = svc.Create(context.Background(), actor, c)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	c = contractFixture()
	c.Status = "archived"
	err = svc.Create(context.Background(), actor, c)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestContractCreateRoleGate(t *testing.T) {
	contracts, _, svc := newContractMocks()

	err := svc.Create(context.Background(), staffActor(policy.RoleStaff), contractFixture())
	assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	contracts.On("Create", mock.Anything, mock.Anything).Return(nil)
	assert.NoError(t, svc.Create(context.Background(), staffActor(policy.RoleManager), contractFixture()))
}

func TestContractDeleteProtected(t *testing.T) {
	contracts, _, svc := newContractMocks()
	actor := staffActor(policy.RoleManager)

	c := contractFixture()
	contracts.On("Get", mock.Anything, c.ID).Return(c, nil)
	contracts.On("HasDeliverables", mock.Anything, c.ID).Return(true, nil)

	err := svc.Delete(context.Background(), actor, c.ID)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	contracts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestContractDeleteEmpty(t *testing.T) {
	contracts, _, svc := newContractMocks()
	actor := staffActor(policy.RoleManager)

	c := contractFixture()
	contracts.On("Get", mock.Anything, c.ID).Return(c, nil)
	contracts.On("HasDeliverables", mock.Anything, c.ID).Return(false, nil)
	contracts.On("Delete", mock.Anything, c.ID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), actor, c.ID))
	contracts.AssertExpectations(t)
}

func TestContractGetComputesRollup(t *testing.T) {
	contracts, deliverables, svc := newContractMocks()
	actor := staffActor(policy.RoleStaff)

	c := contractFixture()
	children := []model.Deliverable{
		{
			ID:          uuid.New(),
			ContractID:  c.ID,
			BudgetHours: decimal.NewFromInt(100),
			Tasks: []model.Task{
				{BudgetHours: decimal.NewFromInt(60)},
			},
			TimeEntries: []model.DeliverableTimeEntry{
				{EntryDate: c.StartDate.AddDate(0, 0, 2), Hours: decimal.NewFromInt(80)},
			},
		},
	}
	contracts.On("Get", mock.Anything, c.ID).Return(c, nil)
	deliverables.On("ListWithChildrenByContract", mock.Anything, c.ID).Return(children, nil)

	out, err := svc.Get(context.Background(), actor, c.ID)
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(out.Rollup.AssignedBudgetHours))
	assert.True(t, decimal.NewFromInt(80).Equal(out.Rollup.SpentHours))
	assert.True(t, out.Rollup.IsOverExpected)
	assert.False(t, out.Rollup.IsOverBudget)
}

func TestContractListHealthFilters(t *testing.T) {
	contracts, deliverables, svc := newContractMocks()
	actor := staffActor(policy.RoleStaff)

	healthy := contractFixture()
	busted := contractFixture()

	contracts.On("List", mock.Anything, mock.Anything).Return([]model.Contract{*healthy, *busted}, nil)
	deliverables.On("ListWithChildrenByContract", mock.Anything, healthy.ID).Return([]model.Deliverable{}, nil)
	// The busted contract has burned past its 400h budget.
	deliverables.On("ListWithChildrenByContract", mock.Anything, busted.ID).Return([]model.Deliverable{
		{
			ID:          uuid.New(),
			ContractID:  busted.ID,
			BudgetHours: decimal.NewFromInt(400),
			TimeEntries: []model.DeliverableTimeEntry{
				{EntryDate: busted.StartDate.AddDate(0, 0, 1), Hours: decimal.NewFromInt(500)},
			},
		},
	}, nil)

	over := true
	out, err := svc.List(context.Background(), actor, ListContractsInput{OverBudget: &over})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, busted.ID, out[0].ID)

	notOver := false
	out, err = svc.List(context.Background(), actor, ListContractsInput{OverBudget: &notOver})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, healthy.ID, out[0].ID)
}
