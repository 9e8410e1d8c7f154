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

// ContractWithRollup is a contract row plus its freshly computed metrics.
type ContractWithRollup struct {
	model.Contract
	Rollup rollup.ContractRollup `json:"rollup"`
}

type ListContractsInput struct {
	repo.ContractFilter
	// Health filters operate on computed fields, so they are applied here
	// after the storage-side filters.
	OverBudget   *bool
	OverExpected *bool
}

type ContractService interface {
	Create(ctx context.Context, actor policy.Actor, c *model.Contract) error
	Update(ctx context.Context, actor policy.Actor, c *model.Contract) error
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*ContractWithRollup, error)
	List(ctx context.Context, actor policy.Actor, in ListContractsInput) ([]ContractWithRollup, error)
}

type contractService struct {
	contracts    repo.ContractRepo
	deliverables repo.DeliverableRepo
	basis        rollup.Basis
	now          func() time.Time
}

func NewContractService(contracts repo.ContractRepo, deliverables repo.DeliverableRepo, basis rollup.Basis) ContractService {
	return &contractService{
		contracts:    contracts,
		deliverables: deliverables,
		basis:        basis,
		now:          time.Now,
	}
}

func validateContract(c *model.Contract) error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errs.Validation("start_date", "start_date and end_date are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errs.Validation("end_date", "must not be before start_date")
	}
	if c.BudgetHours.LessThan(decimal.Zero) {
		return errs.Validation("budget_hours", "must not be negative")
	}
	switch c.Status {
	case "", model.ContractStatusDraft, model.ContractStatusActive, model.ContractStatusClosed:
	default:
		return errs.Validation("status", "must be one of draft, active, closed")
	}
	return nil
}

func (s *contractService) Create(ctx context.Context, actor policy.Actor, c *model.Contract) error {
	if err := authorize(actor, policy.ActionCreate, policy.ResourceContract, nil); err != nil {
		return err
	}
	if err := validateContract(c); err != nil {
		return err
	}
	return s.contracts.Create(ctx, c)
}

func (s *contractService) Update(ctx context.Context, actor policy.Actor, c *model.Contract) error {
	if err := authorize(actor, policy.ActionUpdate, policy.ResourceContract, nil); err != nil {
		return err
	}
	if err := validateContract(c); err != nil {
		return err
	}
	existing, err := s.contracts.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	existing.Name = c.Name
	existing.ClientName = c.ClientName
	existing.StartDate = c.StartDate
	existing.EndDate = c.EndDate
	existing.BudgetHours = c.BudgetHours
	if c.Status != "" {
		existing.Status = c.Status
	}
	*c = *existing
	return s.contracts.Update(ctx, existing)
}

// Delete is protect-on-delete: a contract with deliverables is never removed.
func (s *contractService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := authorize(actor, policy.ActionDelete, policy.ResourceContract, nil); err != nil {
		return err
	}
	if _, err := s.contracts.Get(ctx, id); err != nil {
		return err
	}
	has, err := s.contracts.HasDeliverables(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return errs.Conflict("contract still has deliverables")
	}
	return s.contracts.Delete(ctx, id)
}

func (s *contractService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*ContractWithRollup, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceContract, nil); err != nil {
		return nil, err
	}
	c, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.computeRollup(ctx, c)
	if err != nil {
		return nil, err
	}
	return &ContractWithRollup{Contract: *c, Rollup: r}, nil
}

func (s *contractService) List(ctx context.Context, actor policy.Actor, in ListContractsInput) ([]ContractWithRollup, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceContract, nil); err != nil {
		return nil, err
	}
	rows, err := s.contracts.List(ctx, in.ContractFilter)
	if err != nil {
		return nil, err
	}

	out := make([]ContractWithRollup, 0, len(rows))
	for i := range rows {
		c := rows[i]
		r, err := s.computeRollup(ctx, &c)
		if err != nil {
			return nil, err
		}
		if in.OverBudget != nil && r.IsOverBudget != *in.OverBudget {
			continue
		}
		if in.OverExpected != nil && r.IsOverExpected != *in.OverExpected {
			continue
		}
		out = append(out, ContractWithRollup{Contract: c, Rollup: r})
	}
	return out, nil
}

func (s *contractService) computeRollup(ctx context.Context, c *model.Contract) (rollup.ContractRollup, error) {
	children, err := s.deliverables.ListWithChildrenByContract(ctx, c.ID)
	if err != nil {
		return rollup.ContractRollup{}, err
	}
	return rollup.ComputeContract(contractFacts(c, children), s.basis, s.now()), nil
}
