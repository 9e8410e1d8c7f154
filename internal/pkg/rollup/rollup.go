// Package rollup derives budget and health metrics from contract hierarchies.
// Everything here is a pure function over value snapshots: no queries, no
// clock access beyond the caller-supplied "today", no persisted output.
package rollup

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Basis selects which child records back the "assigned/expected hours" total.
// The two bases are genuinely different signals and are never merged; the
// active one is a deployment configuration decision.
type Basis string

const (
	// BasisTasks sums task budget_hours.
	BasisTasks Basis = "tasks"
	// BasisAssignments sums assignment budget_hours.
	BasisAssignments Basis = "assignments"
)

func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case BasisTasks, BasisAssignments:
		return Basis(s), nil
	}
	return "", fmt.Errorf("unknown assigned-hours basis %q", s)
}

// Assignment is the slice of an assignment row the engine needs.
type Assignment struct {
	BudgetHours decimal.Decimal
	IsLead      bool
}

// TimeEntry is the slice of a logged-hours row the engine needs.
type TimeEntry struct {
	Date  time.Time
	Hours decimal.Decimal
}

// StatusUpdate carries enough of a status-update row to pick and render the
// latest one.
type StatusUpdate struct {
	ID        uuid.UUID
	PeriodEnd time.Time
	Status    string
	Summary   string
	CreatedAt time.Time
}

// DeliverableFacts is a point-in-time snapshot of one deliverable and its
// children. ContractStart/ContractEnd supply the date fallback when the
// deliverable has no window of its own.
type DeliverableFacts struct {
	BudgetHours   decimal.Decimal
	StartDate     *time.Time
	DueDate       *time.Time
	ContractStart time.Time
	ContractEnd   time.Time

	TaskBudgets   []decimal.Decimal
	Assignments   []Assignment
	Entries       []TimeEntry
	StatusUpdates []StatusUpdate
}

// Window resolves the effective date range, falling back to contract dates.
func (f DeliverableFacts) Window() (start, end time.Time) {
	start = f.ContractStart
	if f.StartDate != nil {
		start = *f.StartDate
	}
	end = f.ContractEnd
	if f.DueDate != nil {
		end = *f.DueDate
	}
	return start, end
}

// DeliverableRollup is the value object returned for a single deliverable.
type DeliverableRollup struct {
	AssignedBudgetHours decimal.Decimal `json:"assigned_budget_hours"`
	StaffedBudgetHours  decimal.Decimal `json:"staffed_budget_hours"`
	SpentHours          decimal.Decimal `json:"spent_hours"`

	PlannedWeeks int `json:"planned_weeks"`
	ElapsedWeeks int `json:"elapsed_weeks"`

	AssignedBudgetHoursPerWeek decimal.Decimal `json:"assigned_budget_hours_per_week"`
	SpentHoursPerWeek          decimal.Decimal `json:"spent_hours_per_week"`

	VarianceHours decimal.Decimal `json:"variance_hours"`

	// Two distinct remainders, never aliased: unassigned measures budget not
	// yet sized into work, unspent measures budget not yet burned.
	UnassignedBudgetHours decimal.Decimal `json:"unassigned_budget_hours"`
	UnspentBudgetHours    decimal.Decimal `json:"unspent_budget_hours"`

	IsOverBudget      bool `json:"is_over_budget"`
	IsOverassigned    bool `json:"is_overassigned"`
	IsOverExpected    bool `json:"is_over_expected"`
	IsMissingEstimate bool `json:"is_missing_estimate"`
	IsMissingLead     bool `json:"is_missing_lead"`

	LatestStatusUpdate *StatusUpdate `json:"latest_status_update,omitempty"`
}

// ComputeDeliverable derives the full rollup for one deliverable.
func ComputeDeliverable(f DeliverableFacts, basis Basis, today time.Time) DeliverableRollup {
	assigned := AssignedBudgetHours(f, basis)
	staffed := sum(assignmentBudgets(f.Assignments))
	spent := SpentHours(f)

	start, end := f.Window()
	planned := PlannedWeeks(start, end)
	elapsed := ElapsedWeeks(start, end, today)

	return DeliverableRollup{
		AssignedBudgetHours: assigned,
		StaffedBudgetHours:  staffed,
		SpentHours:          spent,

		PlannedWeeks: planned,
		ElapsedWeeks: elapsed,

		AssignedBudgetHoursPerWeek: assigned.Div(decimal.NewFromInt(int64(planned))),
		SpentHoursPerWeek:          spent.Div(decimal.NewFromInt(int64(elapsed))),

		VarianceHours: spent.Sub(assigned),

		UnassignedBudgetHours: f.BudgetHours.Sub(assigned),
		UnspentBudgetHours:    f.BudgetHours.Sub(spent),

		IsOverBudget:      spent.GreaterThan(f.BudgetHours),
		IsOverassigned:    assigned.GreaterThan(f.BudgetHours),
		IsOverExpected:    spent.GreaterThan(assigned),
		IsMissingEstimate: isMissingEstimate(f, basis),
		IsMissingLead:     IsMissingLead(f.Assignments),

		LatestStatusUpdate: LatestStatusUpdate(f.StatusUpdates),
	}
}

// AssignedBudgetHours sums the basis-selected child budgets.
func AssignedBudgetHours(f DeliverableFacts, basis Basis) decimal.Decimal {
	if basis == BasisAssignments {
		return sum(assignmentBudgets(f.Assignments))
	}
	return sum(f.TaskBudgets)
}

// SpentHours sums logged hours across the deliverable's time entries.
func SpentHours(f DeliverableFacts) decimal.Decimal {
	total := decimal.Zero
	for _, e := range f.Entries {
		total = total.Add(e.Hours)
	}
	return total
}

// isMissingEstimate: unsized work exists under the active basis. A deliverable
// with no child work at all is not "missing" anything.
func isMissingEstimate(f DeliverableFacts, basis Basis) bool {
	if basis == BasisAssignments {
		return len(f.Assignments) > 0 && sum(assignmentBudgets(f.Assignments)).IsZero()
	}
	return len(f.TaskBudgets) > 0 && sum(f.TaskBudgets).IsZero()
}

// IsMissingLead reports whether no assignment carries the lead flag. True for
// the no-assignments case as well.
func IsMissingLead(assignments []Assignment) bool {
	for _, a := range assignments {
		if a.IsLead {
			return false
		}
	}
	return true
}

// LatestStatusUpdate picks the update with the greatest period_end. Ties break
// on created_at, then id, so the result is deterministic regardless of input
// order. Nil when there are no updates.
func LatestStatusUpdate(updates []StatusUpdate) *StatusUpdate {
	var latest *StatusUpdate
	for i := range updates {
		u := &updates[i]
		if latest == nil || statusUpdateLess(latest, u) {
			latest = u
		}
	}
	if latest == nil {
		return nil
	}
	cp := *latest
	return &cp
}

func statusUpdateLess(a, b *StatusUpdate) bool {
	if !a.PeriodEnd.Equal(b.PeriodEnd) {
		return a.PeriodEnd.Before(b.PeriodEnd)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// PlannedWeeks is ceil(span_days/7) over the inclusive [start, end] range,
// clamped to at least 1 so it is always a safe denominator.
func PlannedWeeks(start, end time.Time) int {
	return weeksSpanning(start, end)
}

// ElapsedWeeks is the same formula with end capped at today. Returns 1 before
// the range starts.
func ElapsedWeeks(start, end, today time.Time) int {
	today = dateOnly(today)
	if today.Before(dateOnly(start)) {
		return 1
	}
	actualEnd := end
	if today.Before(dateOnly(end)) {
		actualEnd = today
	}
	return weeksSpanning(start, actualEnd)
}

func weeksSpanning(start, end time.Time) int {
	days := daysBetween(start, end) + 1
	weeks := (days + 6) / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

// daysBetween counts whole calendar days from a to b, ignoring any
// time-of-day or zone the inputs carry.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / (24 * time.Hour))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assignmentBudgets(assignments []Assignment) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.BudgetHours)
	}
	return out
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
