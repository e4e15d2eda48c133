// Package stats aggregates an account's expense records into summary figures
// and a period-specific time-bucketed breakdown.
//
// The aggregation is pure: it depends only on the caller-supplied record set,
// the requested period and an explicit reference date, so results are fully
// deterministic in tests across week, month and year rollovers.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/now"

	"expensed/internal/core"
)

// Reporting periods. Any other selector silently gets "all" semantics and is
// echoed back unchanged.
const (
	PeriodAll     = "all"
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Summary is the wire shape of a stats response.
type Summary struct {
	TotalSpent    float64            `json:"total_spent"`
	WeeklySpent   float64            `json:"weekly_spent"`
	MonthlySpent  float64            `json:"monthly_spent"`
	CategoryStats map[string]float64 `json:"category_stats"`
	Breakdown     map[string]float64 `json:"breakdown"`
	Period        string             `json:"period"`
}

// Summarize aggregates records for one account.
//
// total_spent, category_stats and the breakdown cover only records inside the
// period window (daily: today; weekly: today-7d..today; monthly:
// today-30d..today; all: everything). weekly_spent and monthly_spent always
// use fixed 7- and 30-day windows anchored on today, whatever the period.
//
// The monthly/all breakdown deliberately re-queries the full unwindowed
// record set with approximate 30-day month boundaries. That asymmetry with
// the daily and weekly breakdowns is long-standing observed behavior that
// downstream charts depend on; keep it.
func Summarize(today core.Date, records []core.Expense, period string) Summary {
	windowed := windowRecords(today, records, period)

	var totalCents int64
	catCents := make(map[string]int64)
	for _, e := range windowed {
		totalCents += e.Amount.Cents
		catCents[e.Category] += e.Amount.Cents
	}

	weeklyCents := TrailingWeekCents(today, records)

	monthAgo := today.AddDays(-30)
	var monthlyCents int64
	for _, e := range records {
		if !e.Date.Before(monthAgo) {
			monthlyCents += e.Amount.Cents
		}
	}

	categoryStats := make(map[string]float64, len(catCents))
	for cat, cents := range catCents {
		categoryStats[cat] = core.Money{Cents: cents}.Units()
	}

	var breakdown map[string]float64
	switch period {
	case PeriodDaily:
		breakdown = hourlyBreakdown(windowed)
	case PeriodWeekly:
		breakdown = weekdayBreakdown(today, windowed)
	default:
		breakdown = approxMonthBreakdown(today, records)
	}

	return Summary{
		TotalSpent:    core.Money{Cents: totalCents}.Units(),
		WeeklySpent:   core.Money{Cents: weeklyCents}.Units(),
		MonthlySpent:  core.Money{Cents: monthlyCents}.Units(),
		CategoryStats: categoryStats,
		Breakdown:     breakdown,
		Period:        period,
	}
}

// TrailingWeekCents sums the amounts dated inside the fixed 7-day window
// ending today. It is the cents-precision source of Summary.WeeklySpent.
func TrailingWeekCents(today core.Date, records []core.Expense) int64 {
	weekAgo := today.AddDays(-7)
	var cents int64
	for _, e := range records {
		if !e.Date.Before(weekAgo) {
			cents += e.Amount.Cents
		}
	}
	return cents
}

func windowRecords(today core.Date, records []core.Expense, period string) []core.Expense {
	var start, end core.Date
	switch period {
	case PeriodDaily:
		start, end = today, today
	case PeriodWeekly:
		start, end = today.AddDays(-7), today
	case PeriodMonthly:
		start, end = today.AddDays(-30), today
	default:
		return records
	}
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// hourlyBreakdown buckets one day's records into 24 "HH:00" keys. Records
// with a missing or unparseable time-of-day land in the "00:00" bucket.
func hourlyBreakdown(records []core.Expense) map[string]float64 {
	cents := make(map[string]int64, 24)
	for i := 0; i < 24; i++ {
		cents[fmt.Sprintf("%02d:00", i)] = 0
	}
	for _, e := range records {
		cents[fmt.Sprintf("%02d:00", hourOf(e.TimeOfDay))] += e.Amount.Cents
	}
	return toUnits(cents)
}

func hourOf(timeOfDay string) int {
	h, _, _ := strings.Cut(timeOfDay, ":")
	n, err := strconv.Atoi(h)
	if err != nil || n < 0 || n > 23 {
		return 0
	}
	return n
}

// weekdayBreakdown buckets records by day-of-week abbreviation across the 7
// days ending today. Seven consecutive days have seven distinct weekdays, so
// every windowed record has exactly one bucket; a record dated exactly 7 days
// ago shares today's weekday and folds into today's bucket, matching the
// inclusive window.
func weekdayBreakdown(today core.Date, records []core.Expense) map[string]float64 {
	cents := make(map[string]int64, 7)
	for i := 6; i >= 0; i-- {
		cents[today.AddDays(-i).Format("Mon")] = 0
	}
	for _, e := range records {
		cents[e.Date.Format("Mon")] += e.Amount.Cents
	}
	return toUnits(cents)
}

// approxMonthBreakdown sums the current and five preceding approximate
// months, anchored at today minus 30*i days. Each bucket runs from the first
// calendar day of its anchor's month to the day before the next anchor's
// month starts (the newest bucket ends at today instead). Boundaries step by
// 30 days rather than true calendar months, so labels can skip a short month
// or, when a 31-day month holds two anchors, collapse onto one key.
//
// Unlike the other breakdowns this scans the full record set, not the period
// window.
func approxMonthBreakdown(today core.Date, records []core.Expense) map[string]float64 {
	cents := make(map[string]int64, 6)
	for i := 0; i < 6; i++ {
		anchor := today.AddDays(-30 * i)
		start := beginningOfMonth(anchor)
		end := today
		if i > 0 {
			prev := today.AddDays(-30 * (i - 1))
			end = beginningOfMonth(prev).AddDays(-1)
		}
		var sum int64
		for _, e := range records {
			if e.Date.Before(start) || e.Date.After(end) {
				continue
			}
			sum += e.Amount.Cents
		}
		cents[anchor.Format("Jan 2006")] = sum
	}
	return toUnits(cents)
}

func beginningOfMonth(d core.Date) core.Date {
	return core.DateOf(now.With(d.Time).BeginningOfMonth())
}

func toUnits(cents map[string]int64) map[string]float64 {
	out := make(map[string]float64, len(cents))
	for k, v := range cents {
		out[k] = core.Money{Cents: v}.Units()
	}
	return out
}
