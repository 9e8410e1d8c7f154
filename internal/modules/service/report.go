package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/pkg/policy"
	"github.com/harborline/stafftrack/internal/pkg/rollup"
)

const dateLayout = "2006-01-02"

type BurnBucketRow struct {
	BucketEndDate      string          `json:"bucket_end_date"`
	ExpectedHours      decimal.Decimal `json:"expected_hours"`
	ActualHours        decimal.Decimal `json:"actual_hours"`
	CumulativeExpected decimal.Decimal `json:"cumulative_expected"`
	CumulativeActual   decimal.Decimal `json:"cumulative_actual"`
}

type ContractBurnReport struct {
	ContractID          uuid.UUID       `json:"contract_id"`
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	BudgetHours         decimal.Decimal `json:"budget_hours"`
	AssignedBudgetHours decimal.Decimal `json:"assigned_budget_hours"`
	SpentHours          decimal.Decimal `json:"spent_hours"`
	UnspentBudgetHours  decimal.Decimal `json:"unspent_budget_hours"`
	IsOverBudget        bool            `json:"is_over_budget"`
	IsOverExpected      bool            `json:"is_over_expected"`
	Buckets             []BurnBucketRow `json:"buckets"`
}

type DeliverableBurnReport struct {
	DeliverableID       uuid.UUID       `json:"deliverable_id"`
	Name                string          `json:"name"`
	AssignedBudgetHours decimal.Decimal `json:"assigned_budget_hours"`
	SpentHours          decimal.Decimal `json:"spent_hours"`
	VarianceHours       decimal.Decimal `json:"variance_hours"`
	IsOverExpected      bool            `json:"is_over_expected"`
	Buckets             []BurnBucketRow `json:"buckets"`
}

type DeliverableSummaryRow struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Status              string          `json:"status"`
	AssignedBudgetHours decimal.Decimal `json:"assigned_budget_hours"`
	SpentHours          decimal.Decimal `json:"spent_hours"`
	VarianceHours       decimal.Decimal `json:"variance_hours"`
	LatestStatus        *string         `json:"latest_status"`
}

type ContractDeliverablesReport struct {
	ContractID   uuid.UUID               `json:"contract_id"`
	Deliverables []DeliverableSummaryRow `json:"deliverables"`
}

type StatusHistoryRow struct {
	PeriodEnd string    `json:"period_end"`
	Status    string    `json:"status"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

type DeliverableStatusHistoryReport struct {
	DeliverableID uuid.UUID          `json:"deliverable_id"`
	Name          string             `json:"name"`
	StatusHistory []StatusHistoryRow `json:"status_history"`
}

type ReportService interface {
	ContractBurn(ctx context.Context, actor policy.Actor, contractID uuid.UUID) (*ContractBurnReport, error)
	ContractDeliverables(ctx context.Context, actor policy.Actor, contractID uuid.UUID) (*ContractDeliverablesReport, error)
	DeliverableBurn(ctx context.Context, actor policy.Actor, deliverableID uuid.UUID) (*DeliverableBurnReport, error)
	DeliverableStatusHistory(ctx context.Context, actor policy.Actor, deliverableID uuid.UUID) (*DeliverableStatusHistoryReport, error)
}

type reportService struct {
	contracts    repo.ContractRepo
	deliverables repo.DeliverableRepo
	basis        rollup.Basis
	now          func() time.Time
}

func NewReportService(contracts repo.ContractRepo, deliverables repo.DeliverableRepo, basis rollup.Basis) ReportService {
	return &reportService{
		contracts:    contracts,
		deliverables: deliverables,
		basis:        basis,
		now:          time.Now,
	}
}

func (s *reportService) ContractBurn(ctx context.Context, actor policy.Actor, contractID uuid.UUID) (*ContractBurnReport, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceContract, nil); err != nil {
		return nil, err
	}
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}
	children, err := s.deliverables.ListWithChildrenByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	facts := contractFacts(c, children)
	r := rollup.ComputeContract(facts, s.basis, s.now())

	var entries []rollup.TimeEntry
	for _, d := range facts.Deliverables {
		entries = append(entries, d.Entries...)
	}
	rows := rollup.BuildBurn(c.StartDate, c.EndDate, r.AssignedBudgetHours, entries)

	return &ContractBurnReport{
		ContractID:          c.ID,
		StartDate:           c.StartDate.Format(dateLayout),
		EndDate:             c.EndDate.Format(dateLayout),
		BudgetHours:         c.BudgetHours,
		AssignedBudgetHours: r.AssignedBudgetHours,
		SpentHours:          r.SpentHours,
		UnspentBudgetHours:  r.UnspentBudgetHours,
		IsOverBudget:        r.IsOverBudget,
		IsOverExpected:      r.IsOverExpected,
		Buckets:             burnRows(rows),
	}, nil
}

func (s *reportService) ContractDeliverables(ctx context.Context, actor policy.Actor, contractID uuid.UUID) (*ContractDeliverablesReport, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceContract, nil); err != nil {
		return nil, err
	}
	c, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}
	children, err := s.deliverables.ListWithChildrenByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	report := &ContractDeliverablesReport{
		ContractID:   c.ID,
		Deliverables: make([]DeliverableSummaryRow, 0, len(children)),
	}
	for i := range children {
		d := &children[i]
		r := rollup.ComputeDeliverable(deliverableFacts(d, c), s.basis, s.now())

		var latest *string
		if r.LatestStatusUpdate != nil {
			summary := r.LatestStatusUpdate.Summary
			latest = &summary
		}
		report.Deliverables = append(report.Deliverables, DeliverableSummaryRow{
			ID:                  d.ID,
			Name:                d.Name,
			Status:              d.Status,
			AssignedBudgetHours: r.AssignedBudgetHours,
			SpentHours:          r.SpentHours,
			VarianceHours:       r.VarianceHours,
			LatestStatus:        latest,
		})
	}
	return report, nil
}

func (s *reportService) DeliverableBurn(ctx context.Context, actor policy.Actor, deliverableID uuid.UUID) (*DeliverableBurnReport, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceDeliverable, nil); err != nil {
		return nil, err
	}
	d, err := s.deliverables.GetWithChildren(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	facts := deliverableFacts(d, d.Contract)
	r := rollup.ComputeDeliverable(facts, s.basis, s.now())

	// Deliverable burn plots over the parent contract window.
	rows := rollup.BuildBurn(d.Contract.StartDate, d.Contract.EndDate, r.AssignedBudgetHours, facts.Entries)

	return &DeliverableBurnReport{
		DeliverableID:       d.ID,
		Name:                d.Name,
		AssignedBudgetHours: r.AssignedBudgetHours,
		SpentHours:          r.SpentHours,
		VarianceHours:       r.VarianceHours,
		IsOverExpected:      r.IsOverExpected,
		Buckets:             burnRows(rows),
	}, nil
}

func (s *reportService) DeliverableStatusHistory(ctx context.Context, actor policy.Actor, deliverableID uuid.UUID) (*DeliverableStatusHistoryReport, error) {
	if err := authorize(actor, policy.ActionRead, policy.ResourceDeliverable, nil); err != nil {
		return nil, err
	}
	d, err := s.deliverables.GetWithChildren(ctx, deliverableID)
	if err != nil {
		return nil, err
	}

	updates := make([]model.DeliverableStatusUpdate, len(d.StatusUpdates))
	copy(updates, d.StatusUpdates)
	sortStatusUpdates(updates)

	report := &DeliverableStatusHistoryReport{
		DeliverableID: d.ID,
		Name:          d.Name,
		StatusHistory: make([]StatusHistoryRow, 0, len(updates)),
	}
	for _, u := range updates {
		report.StatusHistory = append(report.StatusHistory, StatusHistoryRow{
			PeriodEnd: u.PeriodEnd.Format(dateLayout),
			Status:    u.Status,
			Summary:   u.Summary,
			CreatedAt: u.CreatedAt,
		})
	}
	return report, nil
}

func burnRows(rows []rollup.BurnBucket) []BurnBucketRow {
	out := make([]BurnBucketRow, 0, len(rows))
	for _, b := range rows {
		out = append(out, BurnBucketRow{
			BucketEndDate:      b.BucketEndDate.Format(dateLayout),
			ExpectedHours:      b.ExpectedHours,
			ActualHours:        b.ActualHours,
			CumulativeExpected: b.CumulativeExpected,
			CumulativeActual:   b.CumulativeActual,
		})
	}
	return out
}

func sortStatusUpdates(updates []model.DeliverableStatusUpdate) {
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].PeriodEnd.Before(updates[j].PeriodEnd)
	})
}
