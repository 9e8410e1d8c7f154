package rollup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeekEnding(t *testing.T) {
	// 2024-01-07 is a Sunday.
	sunday := date(2024, 1, 7)
	assert.Equal(t, sunday, WeekEnding(sunday))

	// Monday through Saturday all land on the following Sunday.
	for d := 1; d <= 6; d++ {
		assert.Equal(t, sunday, WeekEnding(date(2024, 1, d)), "day %d", d)
	}

	assert.Equal(t, date(2024, 1, 14), WeekEnding(date(2024, 1, 8)))
}

func TestWeeklyBuckets(t *testing.T) {
	// 2024-01-01 (Mon) .. 2024-01-28 (Sun) spans four Sundays.
	got := WeeklyBuckets(date(2024, 1, 1), date(2024, 1, 28))
	assert.Equal(t, []time.Time{
		date(2024, 1, 7),
		date(2024, 1, 14),
		date(2024, 1, 21),
		date(2024, 1, 28),
	}, got)
}

func TestWeeklyBucketsNeverEmpty(t *testing.T) {
	// Range ends before the first Sunday: still one bucket.
	got := WeeklyBuckets(date(2024, 1, 1), date(2024, 1, 3))
	assert.Equal(t, []time.Time{date(2024, 1, 7)}, got)

	// Even an inverted range yields a bucket.
	got = WeeklyBuckets(date(2024, 1, 10), date(2024, 1, 2))
	assert.Len(t, got, 1)
}

func TestBuildBurn(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 1, 28)
	entries := []TimeEntry{
		{Date: date(2024, 1, 2), Hours: dec("8")},   // week ending Jan 7
		{Date: date(2024, 1, 7), Hours: dec("2")},   // boundary day counts
		{Date: date(2024, 1, 10), Hours: dec("4")},  // week ending Jan 14
		{Date: date(2024, 1, 25), Hours: dec("16")}, // week ending Jan 28
	}

	rows := BuildBurn(start, end, dec("40"), entries)
	assert.Len(t, rows, 4)

	// Expected hours split evenly: 10 per bucket.
	for _, r := range rows {
		assert.True(t, dec("10").Equal(r.ExpectedHours))
	}

	assert.True(t, dec("10").Equal(rows[0].ActualHours))
	assert.True(t, dec("4").Equal(rows[1].ActualHours))
	assert.True(t, rows[2].ActualHours.IsZero())
	assert.True(t, dec("16").Equal(rows[3].ActualHours))

	// Cumulative columns are running sums.
	assert.True(t, dec("10").Equal(rows[0].CumulativeActual))
	assert.True(t, dec("14").Equal(rows[1].CumulativeActual))
	assert.True(t, dec("14").Equal(rows[2].CumulativeActual))
	assert.True(t, dec("30").Equal(rows[3].CumulativeActual))
	assert.True(t, dec("40").Equal(rows[3].CumulativeExpected))
}

func TestBuildBurnIgnoresEntriesOutsideWindow(t *testing.T) {
	rows := BuildBurn(date(2024, 1, 1), date(2024, 1, 7), dec("10"), []TimeEntry{
		{Date: date(2023, 12, 20), Hours: dec("5")},
		{Date: date(2024, 2, 20), Hours: dec("5")},
	})
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].ActualHours.IsZero())
}

func TestBuildBurnZeroExpected(t *testing.T) {
	rows := BuildBurn(date(2024, 1, 1), date(2024, 1, 14), decimal.Zero, nil)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.True(t, r.ExpectedHours.IsZero())
	}
}
