package recurrence

import (
	"reflect"
	"testing"
	"time"

	"budgeteer/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthly(anchor time.Time, amount int64) models.Subscription {
	return models.Subscription{
		Base:      models.Base{ID: 7},
		UserID:    1,
		Name:      "Netflix",
		Amount:    amount,
		Cycle:     models.CycleMonthly,
		Category:  "Entertainment",
		StartDate: anchor,
	}
}

func yearly(anchor time.Time, amount int64) models.Subscription {
	return models.Subscription{
		Base:      models.Base{ID: 9},
		UserID:    1,
		Name:      "Domain",
		Amount:    amount,
		Cycle:     models.CycleYearly,
		StartDate: anchor,
	}
}

func occurrenceDates(occs []Occurrence) []time.Time {
	dates := make([]time.Time, len(occs))
	for i, o := range occs {
		dates[i] = o.Date
	}
	return dates
}

func TestProjectMonthly(t *testing.T) {
	t.Run("one_occurrence_per_month_on_anchor_day", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 15), 5000)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.March, 31), nil)

		want := []time.Time{
			date(2024, time.January, 15),
			date(2024, time.February, 15),
			date(2024, time.March, 15),
		}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
		for _, o := range occs {
			if o.Amount != 5000 {
				t.Errorf("expected amount 5000, got %d", o.Amount)
			}
			if o.Category != "Entertainment" {
				t.Errorf("expected category Entertainment, got %s", o.Category)
			}
			if o.SubscriptionID != 7 {
				t.Errorf("expected subscription ID 7, got %d", o.SubscriptionID)
			}
		}
	})

	t.Run("anchor_before_window_start_is_skipped", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 5), 5000)

		occs := Project(sub, date(2024, time.January, 10), date(2024, time.February, 28), nil)

		want := []time.Time{date(2024, time.February, 5)}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("anchor_day_clamps_to_short_months", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 31), 5000)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.April, 30), nil)

		want := []time.Time{
			date(2024, time.January, 31),
			date(2024, time.February, 29), // leap year
			date(2024, time.March, 31),
			date(2024, time.April, 30),
		}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("clamps_to_feb_28_outside_leap_years", func(t *testing.T) {
		sub := monthly(date(2023, time.January, 30), 5000)

		occs := Project(sub, date(2023, time.February, 1), date(2023, time.February, 28), nil)

		want := []time.Time{date(2023, time.February, 28)}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("as_of_excludes_later_occurrences", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 15), 5000)
		asOf := date(2024, time.February, 20)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.March, 31), &asOf)

		want := []time.Time{
			date(2024, time.January, 15),
			date(2024, time.February, 15),
		}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("as_of_on_occurrence_day_includes_it", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 15), 5000)
		asOf := date(2024, time.February, 15)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.March, 31), &asOf)

		if len(occs) != 2 {
			t.Errorf("expected 2 occurrences, got %d", len(occs))
		}
	})

	t.Run("window_spanning_year_boundary", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 10), 5000)

		occs := Project(sub, date(2024, time.November, 1), date(2025, time.February, 28), nil)

		want := []time.Time{
			date(2024, time.November, 10),
			date(2024, time.December, 10),
			date(2025, time.January, 10),
			date(2025, time.February, 10),
		}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("empty_window", func(t *testing.T) {
		sub := monthly(date(2024, time.January, 15), 5000)

		occs := Project(sub, date(2024, time.March, 1), date(2024, time.February, 1), nil)

		if len(occs) != 0 {
			t.Errorf("expected no occurrences for inverted window, got %d", len(occs))
		}
	})
}

func TestProjectYearly(t *testing.T) {
	t.Run("single_occurrence_inside_window", func(t *testing.T) {
		sub := yearly(date(2020, time.June, 12), 12000)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.December, 31), nil)

		want := []time.Time{date(2024, time.June, 12)}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("anchor_outside_window_yields_nothing", func(t *testing.T) {
		sub := yearly(date(2020, time.June, 12), 12000)

		occs := Project(sub, date(2024, time.July, 1), date(2024, time.December, 31), nil)

		if len(occs) != 0 {
			t.Errorf("expected no occurrences, got %d", len(occs))
		}
	})

	t.Run("multi_year_window_emits_once_per_year", func(t *testing.T) {
		sub := yearly(date(2020, time.June, 12), 12000)

		occs := Project(sub, date(2023, time.January, 1), date(2025, time.December, 31), nil)

		want := []time.Time{
			date(2023, time.June, 12),
			date(2024, time.June, 12),
			date(2025, time.June, 12),
		}
		if !reflect.DeepEqual(occurrenceDates(occs), want) {
			t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
		}
	})

	t.Run("default_category_applied", func(t *testing.T) {
		sub := yearly(date(2020, time.June, 12), 12000)

		occs := Project(sub, date(2024, time.January, 1), date(2024, time.December, 31), nil)

		if len(occs) != 1 || occs[0].Category != models.DefaultSubscriptionCategory {
			t.Errorf("expected default category, got %+v", occs)
		}
	})
}

func TestProjectDeterminism(t *testing.T) {
	sub := monthly(date(2024, time.January, 31), 4200)
	asOf := date(2024, time.March, 5)

	first := Project(sub, date(2024, time.January, 1), date(2024, time.June, 30), &asOf)
	second := Project(sub, date(2024, time.January, 1), date(2024, time.June, 30), &asOf)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("projection is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestProjectIgnoresTimeOfDay(t *testing.T) {
	sub := monthly(time.Date(2024, time.January, 15, 23, 45, 0, 0, time.UTC), 5000)

	occs := Project(sub,
		time.Date(2024, time.January, 1, 18, 30, 0, 0, time.UTC),
		time.Date(2024, time.January, 31, 2, 0, 0, 0, time.UTC),
		nil)

	want := []time.Time{date(2024, time.January, 15)}
	if !reflect.DeepEqual(occurrenceDates(occs), want) {
		t.Errorf("expected dates %v, got %v", want, occurrenceDates(occs))
	}
}
