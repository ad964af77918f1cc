package services

import (
	"strings"
	"testing"

	"budgeteer/internal/models"
	"budgeteer/internal/testutil"
)

func TestGetBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)

	t.Run("deducts subscription occurrences from the stored balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		// Past window: every occurrence is already due.
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 3, 31))
		testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 1500, date(2025, 1, 10))

		balance, err := svc.GetBalance(user.ID)
		testutil.AssertNoError(t, err)

		// Jan 10, Feb 10, Mar 10
		if balance.CurrentAmount != 100000-3*1500 {
			t.Errorf("expected current %d, got %d", 100000-3*1500, balance.CurrentAmount)
		}
		if balance.TotalAmount != 100000 {
			t.Errorf("expected total 100000, got %d", balance.TotalAmount)
		}

		// The view never writes through to the stored row.
		var stored models.Budget
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).First(&stored).Error)
		if stored.CurrentAmount != 100000 {
			t.Errorf("expected stored amount untouched, got %d", stored.CurrentAmount)
		}
	})

	t.Run("floors the display balance at zero", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 2000, date(2025, 1, 1), date(2025, 6, 30))
		testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 1000, date(2025, 1, 1))

		balance, err := svc.GetBalance(user.ID)
		testutil.AssertNoError(t, err)

		if balance.CurrentAmount != 0 {
			t.Errorf("expected floored balance 0, got %d", balance.CurrentAmount)
		}
	})

	t.Run("requires a live budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := svc.GetBalance(user.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestGetCategoryBreakdown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)

	t.Run("combines expenses and subscriptions with percentages", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))
		testutil.CreateTestExpense(t, db, user.ID, "Food", 3000, date(2025, 1, 5))
		testutil.CreateTestExpense(t, db, user.ID, "Food", 2000, date(2025, 1, 6))
		testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 5000, date(2025, 1, 10))

		shares, err := svc.GetCategoryBreakdown(user.ID)
		testutil.AssertNoError(t, err)

		if len(shares) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(shares))
		}

		byCategory := make(map[string]CategoryShare)
		for _, s := range shares {
			byCategory[s.Category] = s
		}

		food := byCategory["Food"]
		if food.Amount != 5000 {
			t.Errorf("expected Food amount 5000, got %d", food.Amount)
		}
		if food.Percentage != 50 {
			t.Errorf("expected Food share 50, got %v", food.Percentage)
		}

		subs := byCategory[models.DefaultSubscriptionCategory]
		if subs.Amount != 5000 {
			t.Errorf("expected Subscription amount 5000, got %d", subs.Amount)
		}
		if subs.Percentage != 50 {
			t.Errorf("expected Subscription share 50, got %v", subs.Percentage)
		}
	})

	t.Run("rounds percentages to two decimals", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 2, 1), date(2025, 2, 28))
		testutil.CreateTestExpense(t, db, user.ID, "A", 100, date(2025, 2, 5))
		testutil.CreateTestExpense(t, db, user.ID, "B", 200, date(2025, 2, 6))

		shares, err := svc.GetCategoryBreakdown(user.ID)
		testutil.AssertNoError(t, err)

		// 100/300 = 33.33, 200/300 = 66.67
		if shares[0].Percentage != 33.33 {
			t.Errorf("expected 33.33, got %v", shares[0].Percentage)
		}
		if shares[1].Percentage != 66.67 {
			t.Errorf("expected 66.67, got %v", shares[1].Percentage)
		}
	})

	t.Run("returns empty breakdown for no spend", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 3, 1), date(2025, 3, 31))

		shares, err := svc.GetCategoryBreakdown(user.ID)
		testutil.AssertNoError(t, err)
		if len(shares) != 0 {
			t.Errorf("expected no shares, got %d", len(shares))
		}
	})
}

func TestGetDailySeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))
	testutil.CreateTestExpense(t, db, user.ID, "Food", 1000, date(2025, 1, 5))
	testutil.CreateTestExpense(t, db, user.ID, "Transport", 500, date(2025, 1, 5))
	testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 2000, date(2025, 1, 20))

	series, err := svc.GetDailySeries(user.ID)
	testutil.AssertNoError(t, err)

	if len(series) != 2 {
		t.Fatalf("expected 2 days, got %d", len(series))
	}
	if series[0].Date != "2025-01-05" || series[0].TotalAmount != 1500 {
		t.Errorf("expected 2025-01-05 total 1500, got %s %d", series[0].Date, series[0].TotalAmount)
	}
	if series[1].Date != "2025-01-20" || series[1].TotalAmount != 2000 {
		t.Errorf("expected 2025-01-20 total 2000, got %s %d", series[1].Date, series[1].TotalAmount)
	}
}

func TestGetLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 2, 28))
	expense := testutil.CreateTestExpense(t, db, user.ID, "Food", 1000, date(2025, 1, 15))
	sub := testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 2000, date(2025, 1, 10))

	entries, err := svc.GetLedger(user.ID)
	testutil.AssertNoError(t, err)

	// One expense plus Jan 10 and Feb 10 occurrences.
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Sorted newest first.
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Errorf("entries out of order at %d: %v after %v", i, entries[i].Date, entries[i-1].Date)
		}
	}

	var realCount, virtualCount int
	for _, e := range entries {
		if e.IsSubscription {
			virtualCount++
			if !strings.HasPrefix(e.ID, "sub-") {
				t.Errorf("expected synthetic id prefix, got %q", e.ID)
			}
			if e.Name != sub.Name+" (Subscription)" {
				t.Errorf("expected subscription name suffix, got %q", e.Name)
			}
		} else {
			realCount++
			if e.Name != expense.Name {
				t.Errorf("expected expense name %q, got %q", expense.Name, e.Name)
			}
		}
	}
	if realCount != 1 || virtualCount != 2 {
		t.Errorf("expected 1 real and 2 virtual entries, got %d and %d", realCount, virtualCount)
	}

	// Synthetic ids are deterministic across reads.
	again, err := svc.GetLedger(user.ID)
	testutil.AssertNoError(t, err)
	for i := range entries {
		if entries[i].ID != again[i].ID {
			t.Errorf("expected stable ids, got %q then %q", entries[i].ID, again[i].ID)
		}
	}
}

func TestViewConsistency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)
	// Fully past window, so "due so far" covers the whole period and every
	// view sees the same occurrence set.
	testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 3, 31))
	testutil.CreateTestExpense(t, db, user.ID, "Food", 3000, date(2025, 1, 5))
	testutil.CreateTestExpense(t, db, user.ID, "Transport", 2000, date(2025, 2, 10))
	testutil.CreateTestSubscription(t, db, user.ID, models.CycleMonthly, 1500, date(2025, 1, 20))
	testutil.CreateTestSubscription(t, db, user.ID, models.CycleYearly, 9000, date(2025, 2, 14))

	entries, err := svc.GetLedger(user.ID)
	testutil.AssertNoError(t, err)
	var ledgerTotal int64
	for _, e := range entries {
		ledgerTotal += e.Amount
	}

	shares, err := svc.GetCategoryBreakdown(user.ID)
	testutil.AssertNoError(t, err)
	var categoryTotal int64
	for _, s := range shares {
		categoryTotal += s.Amount
	}

	series, err := svc.GetDailySeries(user.ID)
	testutil.AssertNoError(t, err)
	var dailyTotal int64
	for _, d := range series {
		dailyTotal += d.TotalAmount
	}

	if ledgerTotal != categoryTotal || categoryTotal != dailyTotal {
		t.Errorf("views disagree: ledger %d, categories %d, daily %d", ledgerTotal, categoryTotal, dailyTotal)
	}
}

func TestGetExpensesByRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewLedgerService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestExpense(t, db, user.ID, "Food", 1000, date(2025, 1, 5))
	testutil.CreateTestExpense(t, db, user.ID, "Food", 2000, date(2025, 1, 20))
	testutil.CreateTestExpense(t, db, user.ID, "Food", 3000, date(2025, 2, 5))

	t.Run("returns expenses within the range inclusive", func(t *testing.T) {
		expenses, err := svc.GetExpensesByRange(user.ID, date(2025, 1, 5), date(2025, 1, 20))
		testutil.AssertNoError(t, err)
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(expenses))
		}
		// Newest first
		if expenses[0].Amount != 2000 {
			t.Errorf("expected newest expense first, got amount %d", expenses[0].Amount)
		}
	})

	t.Run("reports an empty range as not found", func(t *testing.T) {
		_, err := svc.GetExpensesByRange(user.ID, date(2024, 1, 1), date(2024, 12, 31))
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}
