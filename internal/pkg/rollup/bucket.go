package rollup

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekEnding returns d when d is a Sunday, otherwise the next Sunday strictly
// after d.
func WeekEnding(d time.Time) time.Time {
	d = dateOnly(d)
	offset := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// WeeklyBuckets partitions [start, end] into Sunday-ending weekly buckets.
// Never returns an empty slice: a range shorter than one week still yields the
// single bucket WeekEnding(start), since consumers divide totals by the
// bucket count.
func WeeklyBuckets(start, end time.Time) []time.Time {
	end = dateOnly(end)

	var buckets []time.Time
	for cur := WeekEnding(start); !cur.After(end); cur = cur.AddDate(0, 0, 7) {
		buckets = append(buckets, cur)
	}
	if len(buckets) == 0 {
		buckets = append(buckets, WeekEnding(start))
	}
	return buckets
}

// BurnBucket is one row of a burn report.
type BurnBucket struct {
	BucketEndDate      time.Time
	ExpectedHours      decimal.Decimal
	ActualHours        decimal.Decimal
	CumulativeExpected decimal.Decimal
	CumulativeActual   decimal.Decimal
}

// BuildBurn fills the weekly buckets for [start, end]: the expected total is
// split evenly across buckets (not weighted by bucket length), each bucket's
// actual sums the entries dated within [end-6d, end], and cumulative columns
// are running sums in chronological order.
func BuildBurn(start, end time.Time, totalExpected decimal.Decimal, entries []TimeEntry) []BurnBucket {
	buckets := WeeklyBuckets(start, end)
	perBucket := totalExpected.Div(decimal.NewFromInt(int64(len(buckets))))

	cumExpected := decimal.Zero
	cumActual := decimal.Zero

	rows := make([]BurnBucket, 0, len(buckets))
	for _, bucketEnd := range buckets {
		bucketStart := bucketEnd.AddDate(0, 0, -6)

		actual := decimal.Zero
		for _, e := range entries {
			d := dateOnly(e.Date)
			if !d.Before(bucketStart) && !d.After(bucketEnd) {
				actual = actual.Add(e.Hours)
			}
		}

		cumExpected = cumExpected.Add(perBucket)
		cumActual = cumActual.Add(actual)

		rows = append(rows, BurnBucket{
			BucketEndDate:      bucketEnd,
			ExpectedHours:      perBucket,
			ActualHours:        actual,
			CumulativeExpected: cumExpected,
			CumulativeActual:   cumActual,
		})
	}
	return rows
}
