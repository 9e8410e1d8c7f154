package rollup

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeContractSumsChildren(t *testing.T) {
	f := ContractFacts{
		BudgetHours: dec("200"),
		StartDate:   date(2024, 1, 1),
		EndDate:     date(2024, 2, 25),
		Deliverables: []DeliverableFacts{
			{
				BudgetHours:   dec("100"),
				ContractStart: date(2024, 1, 1),
				ContractEnd:   date(2024, 2, 25),
				TaskBudgets:   []decimal.Decimal{dec("30"), dec("20")},
				Assignments:   []Assignment{{BudgetHours: dec("45"), IsLead: true}},
				Entries:       []TimeEntry{{Date: date(2024, 1, 3), Hours: dec("25")}},
			},
			{
				BudgetHours:   dec("80"),
				ContractStart: date(2024, 1, 1),
				ContractEnd:   date(2024, 2, 25),
				TaskBudgets:   []decimal.Decimal{dec("60")},
				Entries:       []TimeEntry{{Date: date(2024, 1, 10), Hours: dec("95")}},
			},
		},
	}

	r := ComputeContract(f, BasisTasks, date(2024, 1, 14))

	assert.True(t, dec("110").Equal(r.AssignedBudgetHours))
	assert.True(t, dec("45").Equal(r.StaffedBudgetHours))
	assert.True(t, dec("120").Equal(r.SpentHours))
	assert.Equal(t, 8, r.PlannedWeeks)
	assert.Equal(t, 2, r.ElapsedWeeks)
	assert.True(t, dec("90").Equal(r.UnassignedBudgetHours))
	assert.True(t, dec("80").Equal(r.UnspentBudgetHours))

	assert.False(t, r.IsOverBudget)
	assert.False(t, r.IsOverassigned)
	// Spend exceeds the summed child assigned budgets.
	assert.True(t, r.IsOverExpected)
}

func TestComputeContractEmpty(t *testing.T) {
	f := ContractFacts{
		BudgetHours: dec("50"),
		StartDate:   date(2024, 1, 1),
		EndDate:     date(2024, 1, 7),
	}
	r := ComputeContract(f, BasisAssignments, date(2024, 1, 4))

	assert.True(t, r.AssignedBudgetHours.IsZero())
	assert.True(t, r.SpentHours.IsZero())
	assert.True(t, dec("50").Equal(r.UnspentBudgetHours))
	assert.Equal(t, 1, r.PlannedWeeks)
	assert.False(t, r.IsOverExpected)
}
