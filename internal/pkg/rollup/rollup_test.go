package rollup

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseBasis(t *testing.T) {
	b, err := ParseBasis("tasks")
	assert.NoError(t, err)
	assert.Equal(t, BasisTasks, b)

	b, err = ParseBasis("assignments")
	assert.NoError(t, err)
	assert.Equal(t, BasisAssignments, b)

	_, err = ParseBasis("hours")
	assert.Error(t, err)
}

func TestPlannedWeeks(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", date(2024, 1, 1), date(2024, 1, 1), 1},
		{"exactly one week", date(2024, 1, 1), date(2024, 1, 7), 1},
		{"eight days rounds up", date(2024, 1, 1), date(2024, 1, 8), 2},
		{"four full weeks", date(2024, 1, 1), date(2024, 1, 28), 4},
		{"end before start clamps to one", date(2024, 1, 10), date(2024, 1, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlannedWeeks(tt.start, tt.end))
		})
	}
}

func TestElapsedWeeks(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 1, 28)

	// Before the range starts.
	assert.Equal(t, 1, ElapsedWeeks(start, end, date(2023, 12, 25)))
	// Mid-range caps at today.
	assert.Equal(t, 2, ElapsedWeeks(start, end, date(2024, 1, 10)))
	// On the last day.
	assert.Equal(t, 4, ElapsedWeeks(start, end, date(2024, 1, 28)))
	// After the range ends, caps at end.
	assert.Equal(t, 4, ElapsedWeeks(start, end, date(2024, 6, 1)))
	// First day of the range.
	assert.Equal(t, 1, ElapsedWeeks(start, end, start))
}

func TestElapsedNeverExceedsPlanned(t *testing.T) {
	start := date(2024, 3, 4)
	end := date(2024, 5, 17)
	planned := PlannedWeeks(start, end)

	for today := start.AddDate(0, 0, -10); today.Before(end.AddDate(0, 0, 30)); today = today.AddDate(0, 0, 1) {
		elapsed := ElapsedWeeks(start, end, today)
		assert.GreaterOrEqual(t, elapsed, 1)
		assert.LessOrEqual(t, elapsed, planned)
	}
}

func TestAssignedBudgetHoursBasis(t *testing.T) {
	f := DeliverableFacts{
		TaskBudgets: []decimal.Decimal{dec("10"), dec("5.5")},
		Assignments: []Assignment{
			{BudgetHours: dec("20"), IsLead: true},
			{BudgetHours: dec("12")},
		},
	}

	assert.True(t, dec("15.5").Equal(AssignedBudgetHours(f, BasisTasks)))
	assert.True(t, dec("32").Equal(AssignedBudgetHours(f, BasisAssignments)))
}

func TestComputeDeliverable(t *testing.T) {
	start := date(2024, 1, 1)
	due := date(2024, 1, 28)
	f := DeliverableFacts{
		BudgetHours:   dec("100"),
		StartDate:     &start,
		DueDate:       &due,
		ContractStart: date(2023, 12, 1),
		ContractEnd:   date(2024, 6, 30),
		TaskBudgets:   []decimal.Decimal{dec("40"), dec("20")},
		Assignments: []Assignment{
			{BudgetHours: dec("50"), IsLead: true},
		},
		Entries: []TimeEntry{
			{Date: date(2024, 1, 2), Hours: dec("30")},
			{Date: date(2024, 1, 9), Hours: dec("40.5")},
		},
	}

	r := ComputeDeliverable(f, BasisTasks, date(2024, 1, 14))

	assert.True(t, dec("60").Equal(r.AssignedBudgetHours))
	assert.True(t, dec("50").Equal(r.StaffedBudgetHours))
	assert.True(t, dec("70.5").Equal(r.SpentHours))
	assert.Equal(t, 4, r.PlannedWeeks)
	assert.Equal(t, 2, r.ElapsedWeeks)
	assert.True(t, dec("15").Equal(r.AssignedBudgetHoursPerWeek))
	assert.True(t, dec("35.25").Equal(r.SpentHoursPerWeek))
	assert.True(t, dec("10.5").Equal(r.VarianceHours))
	assert.True(t, dec("40").Equal(r.UnassignedBudgetHours))
	assert.True(t, dec("29.5").Equal(r.UnspentBudgetHours))

	assert.False(t, r.IsOverBudget)
	assert.False(t, r.IsOverassigned)
	assert.True(t, r.IsOverExpected)
	assert.False(t, r.IsMissingEstimate)
	assert.False(t, r.IsMissingLead)
	assert.Nil(t, r.LatestStatusUpdate)
}

func TestComputeDeliverableWindowFallback(t *testing.T) {
	// No own dates: the contract window applies.
	f := DeliverableFacts{
		BudgetHours:   dec("10"),
		ContractStart: date(2024, 1, 1),
		ContractEnd:   date(2024, 2, 25),
	}
	r := ComputeDeliverable(f, BasisTasks, date(2024, 3, 1))
	assert.Equal(t, 8, r.PlannedWeeks)
	assert.Equal(t, 8, r.ElapsedWeeks)

	// Own start only: due date still falls back.
	start := date(2024, 2, 12)
	f.StartDate = &start
	r = ComputeDeliverable(f, BasisTasks, date(2024, 3, 1))
	assert.Equal(t, 2, r.PlannedWeeks)
}

func TestComputeDeliverableZeroSafeDenominators(t *testing.T) {
	// Empty deliverable on a single day: both week counts clamp to 1, so the
	// per-week divisions cannot panic.
	f := DeliverableFacts{
		ContractStart: date(2024, 1, 1),
		ContractEnd:   date(2024, 1, 1),
	}
	r := ComputeDeliverable(f, BasisTasks, date(2024, 1, 1))
	assert.Equal(t, 1, r.PlannedWeeks)
	assert.Equal(t, 1, r.ElapsedWeeks)
	assert.True(t, r.AssignedBudgetHoursPerWeek.IsZero())
	assert.True(t, r.SpentHoursPerWeek.IsZero())
}

func TestMissingEstimate(t *testing.T) {
	// No child work at all is not a missing estimate.
	assert.False(t, isMissingEstimate(DeliverableFacts{}, BasisTasks))

	// Tasks exist but none are sized.
	f := DeliverableFacts{TaskBudgets: []decimal.Decimal{decimal.Zero, decimal.Zero}}
	assert.True(t, isMissingEstimate(f, BasisTasks))

	// One sized task clears the flag.
	f.TaskBudgets = append(f.TaskBudgets, dec("2"))
	assert.False(t, isMissingEstimate(f, BasisTasks))

	// Assignments basis looks at assignments, not tasks.
	f = DeliverableFacts{
		TaskBudgets: []decimal.Decimal{decimal.Zero},
		Assignments: []Assignment{{BudgetHours: dec("8")}},
	}
	assert.False(t, isMissingEstimate(f, BasisAssignments))
}

func TestIsMissingLead(t *testing.T) {
	assert.True(t, IsMissingLead(nil))
	assert.True(t, IsMissingLead([]Assignment{{BudgetHours: dec("4")}}))
	assert.False(t, IsMissingLead([]Assignment{
		{BudgetHours: dec("4")},
		{BudgetHours: dec("2"), IsLead: true},
	}))
}

func TestLatestStatusUpdate(t *testing.T) {
	assert.Nil(t, LatestStatusUpdate(nil))

	a := StatusUpdate{ID: uuid.New(), PeriodEnd: date(2024, 1, 7), Status: "on_track", CreatedAt: date(2024, 1, 7)}
	b := StatusUpdate{ID: uuid.New(), PeriodEnd: date(2024, 1, 14), Status: "at_risk", CreatedAt: date(2024, 1, 14)}

	got := LatestStatusUpdate([]StatusUpdate{a, b})
	assert.Equal(t, b.ID, got.ID)
	// Input order must not matter.
	got = LatestStatusUpdate([]StatusUpdate{b, a})
	assert.Equal(t, b.ID, got.ID)
}

func TestLatestStatusUpdateTieBreak(t *testing.T) {
	end := date(2024, 1, 14)

	// Same period end: later created_at wins.
	a := StatusUpdate{ID: uuid.New(), PeriodEnd: end, CreatedAt: date(2024, 1, 14)}
	b := StatusUpdate{ID: uuid.New(), PeriodEnd: end, CreatedAt: date(2024, 1, 15)}
	got := LatestStatusUpdate([]StatusUpdate{a, b})
	assert.Equal(t, b.ID, got.ID)

	// Same created_at too: greater id wins, deterministically.
	c := StatusUpdate{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), PeriodEnd: end, CreatedAt: end}
	d := StatusUpdate{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), PeriodEnd: end, CreatedAt: end}
	got = LatestStatusUpdate([]StatusUpdate{d, c})
	assert.Equal(t, d.ID, got.ID)
	got = LatestStatusUpdate([]StatusUpdate{c, d})
	assert.Equal(t, d.ID, got.ID)
}
