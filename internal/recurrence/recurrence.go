// Package recurrence projects subscription definitions onto date windows.
//
// A subscription stores only its cycle and an anchor start date; everything
// a read path sees is derived here. Every caller (balance view, category
// breakdown, daily series, full ledger, period archival) must project through
// this package so that identical inputs yield identical occurrences.
package recurrence

import (
	"time"

	"budgeteer/internal/models"
)

// Occurrence is a single derived payment of a subscription: a virtual
// transaction that exists only in merged read views, never in storage.
type Occurrence struct {
	SubscriptionID uint
	Name           string
	Category       string
	Amount         int64
	Date           time.Time
}

// Project returns the ordered occurrences of sub inside [windowStart,
// windowEnd]. When asOf is non-nil, occurrences after it are excluded.
// The result depends only on the arguments; dates are compared at calendar-day
// granularity in UTC.
func Project(sub models.Subscription, windowStart, windowEnd time.Time, asOf *time.Time) []Occurrence {
	start := dayStart(windowStart)
	end := dayStart(windowEnd)
	if end.Before(start) {
		return nil
	}

	var cutoff time.Time
	if asOf != nil {
		cutoff = dayStart(*asOf)
	}

	var occurrences []Occurrence
	emit := func(candidate time.Time) {
		if candidate.Before(start) || candidate.After(end) {
			return
		}
		if asOf != nil && candidate.After(cutoff) {
			return
		}
		occurrences = append(occurrences, Occurrence{
			SubscriptionID: sub.ID,
			Name:           sub.Name,
			Category:       category(sub),
			Amount:         sub.Amount,
			Date:           candidate,
		})
	}

	switch sub.Cycle {
	case models.CycleMonthly:
		anchorDay := sub.StartDate.Day()
		for year, month := start.Year(), start.Month(); ; {
			emit(monthlyCandidate(year, month, anchorDay))
			month++
			if month > time.December {
				month = time.January
				year++
			}
			if time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).After(end) {
				break
			}
		}
	case models.CycleYearly:
		anchorMonth := sub.StartDate.Month()
		anchorDay := sub.StartDate.Day()
		for year := start.Year(); year <= end.Year(); year++ {
			emit(monthlyCandidate(year, anchorMonth, anchorDay))
		}
	}

	return occurrences
}

// monthlyCandidate places the anchor day in the given month, clamping to the
// month's last day when the anchor overflows it (Jan 31 -> Feb 28/29).
func monthlyCandidate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func category(sub models.Subscription) string {
	if sub.Category == "" {
		return models.DefaultSubscriptionCategory
	}
	return sub.Category
}
