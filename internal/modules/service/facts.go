package service

import (
	"github.com/harborline/stafftrack/internal/modules/model"
	"github.com/harborline/stafftrack/internal/pkg/rollup"
	"github.com/shopspring/decimal"
)

// deliverableFacts snapshots a loaded deliverable (children preloaded) into
// the rollup engine's value form. The contract window backs the date
// fallback.
func deliverableFacts(d *model.Deliverable, c *model.Contract) rollup.DeliverableFacts {
	taskBudgets := make([]decimal.Decimal, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		taskBudgets = append(taskBudgets, t.BudgetHours)
	}

	assignments := make([]rollup.Assignment, 0, len(d.Assignments))
	for _, a := range d.Assignments {
		assignments = append(assignments, rollup.Assignment{
			BudgetHours: a.BudgetHours,
			IsLead:      a.IsLead,
		})
	}

	entries := make([]rollup.TimeEntry, 0, len(d.TimeEntries))
	for _, e := range d.TimeEntries {
		entries = append(entries, rollup.TimeEntry{Date: e.EntryDate, Hours: e.Hours})
	}

	updates := make([]rollup.StatusUpdate, 0, len(d.StatusUpdates))
	for _, u := range d.StatusUpdates {
		updates = append(updates, rollup.StatusUpdate{
			ID:        u.ID,
			PeriodEnd: u.PeriodEnd,
			Status:    u.Status,
			Summary:   u.Summary,
			CreatedAt: u.CreatedAt,
		})
	}

	return rollup.DeliverableFacts{
		BudgetHours:   d.BudgetHours,
		StartDate:     d.StartDate,
		DueDate:       d.DueDate,
		ContractStart: c.StartDate,
		ContractEnd:   c.EndDate,
		TaskBudgets:   taskBudgets,
		Assignments:   assignments,
		Entries:       entries,
		StatusUpdates: updates,
	}
}

func contractFacts(c *model.Contract, deliverables []model.Deliverable) rollup.ContractFacts {
	facts := rollup.ContractFacts{
		BudgetHours: c.BudgetHours,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
	}
	for i := range deliverables {
		facts.Deliverables = append(facts.Deliverables, deliverableFacts(&deliverables[i], c))
	}
	return facts
}
