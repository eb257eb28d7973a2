// Package report reduces booking snapshots into utilization figures.
// The functions are pure; callers feed them a read-committed snapshot
// and may run them concurrently with writers.
package report

import (
	"sort"
	"time"

	"github.com/akrudenko/OfficeBankIS/internal/domain"
	"github.com/shopspring/decimal"
)

// DayUtilization is one calendar day's occupancy within the workday
// window.
type DayUtilization struct {
	Date           string  `json:"date"`
	BookedMinutes  int     `json:"booked_minutes"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// ResourceMinutes is a resource's total booked minutes over a period.
type ResourceMinutes struct {
	Resource string `json:"resource"`
	Minutes  int    `json:"minutes"`
}

// DailyUtilization emits one row per calendar day from periodStart's
// date through periodEnd's date inclusive. Each booking intersecting a
// day's workday window [date@startHour, date@endHour) contributes its
// clipped whole-minute duration. Days without bookings still appear
// with zero minutes, but an empty snapshot yields an empty result.
func DailyUtilization(bookings []domain.BookingSummary, periodStart, periodEnd time.Time, workdayStartHour, workdayEndHour int) []DayUtilization {
	if len(bookings) == 0 {
		return nil
	}

	workMinutes := (workdayEndHour - workdayStartHour) * 60
	if workMinutes < 1 {
		workMinutes = 1
	}

	loc := periodStart.Location()
	first := dateOf(periodStart)
	last := dateOf(periodEnd)

	var out []DayUtilization
	for day := first; !day.after(last); day = day.next() {
		windowStart := time.Date(day.year, day.month, day.day, workdayStartHour, 0, 0, 0, loc)
		windowEnd := time.Date(day.year, day.month, day.day, workdayEndHour, 0, 0, 0, loc)

		booked := 0
		for _, b := range bookings {
			if !b.StartAt.Before(windowEnd) || !b.EndAt.After(windowStart) {
				continue
			}
			s := b.StartAt
			if s.Before(windowStart) {
				s = windowStart
			}
			e := b.EndAt
			if e.After(windowEnd) {
				e = windowEnd
			}
			if e.After(s) {
				booked += int(e.Sub(s) / time.Minute)
			}
		}

		pct := decimal.NewFromInt(int64(booked) * 100).
			Div(decimal.NewFromInt(int64(workMinutes))).
			Round(2)

		out = append(out, DayUtilization{
			Date:           windowStart.Format("2006-01-02"),
			BookedMinutes:  booked,
			UtilizationPct: pct.InexactFloat64(),
		})
	}
	return out
}

// TopResources sums each booking's unclipped whole-minute duration per
// resource name and returns at most topN entries, busiest first. Ties
// resolve alphabetically.
func TopResources(bookings []domain.BookingSummary, topN int) []ResourceMinutes {
	totals := make(map[string]int, len(bookings))
	for _, b := range bookings {
		totals[b.Resource] += int(b.EndAt.Sub(b.StartAt) / time.Minute)
	}

	out := make([]ResourceMinutes, 0, len(totals))
	for name, minutes := range totals {
		out = append(out, ResourceMinutes{Resource: name, Minutes: minutes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Resource < out[j].Resource
	})

	if topN >= 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

func (d civilDate) next() civilDate {
	return dateOf(time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1))
}

func (d civilDate) after(o civilDate) bool {
	if d.year != o.year {
		return d.year > o.year
	}
	if d.month != o.month {
		return d.month > o.month
	}
	return d.day > o.day
}
