package rollup

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractFacts snapshots a contract and all of its deliverables. Contract
// totals are always composed from per-deliverable rollups so the date
// fallback and basis rules live in exactly one place.
type ContractFacts struct {
	BudgetHours decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time

	Deliverables []DeliverableFacts
}

type ContractRollup struct {
	AssignedBudgetHours decimal.Decimal `json:"assigned_budget_hours"`
	StaffedBudgetHours  decimal.Decimal `json:"staffed_budget_hours"`
	SpentHours          decimal.Decimal `json:"spent_hours"`

	PlannedWeeks int `json:"planned_weeks"`
	ElapsedWeeks int `json:"elapsed_weeks"`

	AssignedBudgetHoursPerWeek decimal.Decimal `json:"assigned_budget_hours_per_week"`
	SpentHoursPerWeek          decimal.Decimal `json:"spent_hours_per_week"`

	UnassignedBudgetHours decimal.Decimal `json:"unassigned_budget_hours"`
	UnspentBudgetHours    decimal.Decimal `json:"unspent_budget_hours"`

	IsOverBudget   bool `json:"is_over_budget"`
	IsOverassigned bool `json:"is_overassigned"`
	// IsOverExpected compares spend against the summed child assigned budgets,
	// not against the contract's own declared budget.
	IsOverExpected bool `json:"is_over_expected"`
}

// ComputeContract derives the contract rollup by summing each child
// deliverable's rollup.
func ComputeContract(f ContractFacts, basis Basis, today time.Time) ContractRollup {
	assigned := decimal.Zero
	staffed := decimal.Zero
	spent := decimal.Zero
	for _, d := range f.Deliverables {
		child := ComputeDeliverable(d, basis, today)
		assigned = assigned.Add(child.AssignedBudgetHours)
		staffed = staffed.Add(child.StaffedBudgetHours)
		spent = spent.Add(child.SpentHours)
	}

	planned := PlannedWeeks(f.StartDate, f.EndDate)
	elapsed := ElapsedWeeks(f.StartDate, f.EndDate, today)

	return ContractRollup{
		AssignedBudgetHours: assigned,
		StaffedBudgetHours:  staffed,
		SpentHours:          spent,

		PlannedWeeks: planned,
		ElapsedWeeks: elapsed,

		AssignedBudgetHoursPerWeek: assigned.Div(decimal.NewFromInt(int64(planned))),
		SpentHoursPerWeek:          spent.Div(decimal.NewFromInt(int64(elapsed))),

		UnassignedBudgetHours: f.BudgetHours.Sub(assigned),
		UnspentBudgetHours:    f.BudgetHours.Sub(spent),

		IsOverBudget:   spent.GreaterThan(f.BudgetHours),
		IsOverassigned: assigned.GreaterThan(f.BudgetHours),
		IsOverExpected: spent.GreaterThan(assigned),
	}
}
