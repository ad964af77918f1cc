package services

import (
	"testing"
	"time"

	"budgeteer/internal/models"
	"budgeteer/internal/testutil"
)

func TestAddExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewExpenseService(db)

	t.Run("deducts from live budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))

		expense, err := svc.AddExpense(user.ID, "Food", "Groceries", 25000, date(2025, 1, 5), "weekly shop")
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Error("expected expense to have an ID")
		}

		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 75000 {
			t.Errorf("expected remaining 75000, got %d", reloaded.CurrentAmount)
		}
	})

	t.Run("rejects when remaining amount is insufficient", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 10000, date(2025, 1, 1), date(2025, 1, 31))

		_, err := svc.AddExpense(user.ID, "Food", "Dinner", 10001, date(2025, 1, 5), "")
		testutil.AssertAppError(t, err, "INSUFFICIENT_BUDGET")

		// Nothing persisted, balance untouched
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected no expenses, got %d", count)
		}
		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 10000 {
			t.Errorf("expected remaining 10000, got %d", reloaded.CurrentAmount)
		}
	})

	t.Run("allows spending the exact remaining amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 5000, date(2025, 1, 1), date(2025, 1, 31))

		_, err := svc.AddExpense(user.ID, "Food", "Lunch", 5000, date(2025, 1, 5), "")
		testutil.AssertNoError(t, err)

		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 0 {
			t.Errorf("expected remaining 0, got %d", reloaded.CurrentAmount)
		}
	})

	t.Run("requires a live budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddExpense(user.ID, "Food", "Dinner", 1000, date(2025, 1, 5), "")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))

		_, err := svc.AddExpense(user.ID, "Food", "Dinner", 0, date(2025, 1, 5), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.AddExpense(user.ID, "Food", "", 1000, date(2025, 1, 5), "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("defaults missing date to now", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 12, 31))

		expense, err := svc.AddExpense(user.ID, "Food", "Snack", 100, time.Time{}, "")
		testutil.AssertNoError(t, err)
		if expense.Date.IsZero() {
			t.Error("expected date to default to now")
		}
	})
}

func TestEditExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewExpenseService(db)

	t.Run("updates fields without touching the balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))

		expense, err := svc.AddExpense(user.ID, "Food", "Groceries", 25000, date(2025, 1, 5), "")
		testutil.AssertNoError(t, err)

		newAmount := int64(40000)
		newName := "Big shop"
		updated, err := svc.EditExpense(user.ID, expense.ID, ExpenseUpdateFields{
			Amount: &newAmount,
			Name:   &newName,
		})
		testutil.AssertNoError(t, err)

		if updated.Amount != 40000 {
			t.Errorf("expected amount 40000, got %d", updated.Amount)
		}
		if updated.Name != "Big shop" {
			t.Errorf("expected name updated, got %q", updated.Name)
		}

		// The balance reflects only the original deduction.
		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 75000 {
			t.Errorf("expected remaining 75000, got %d", reloaded.CurrentAmount)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))
		expense := testutil.CreateTestExpense(t, db, user.ID, "Food", 1000, date(2025, 1, 5))

		bad := int64(0)
		_, err := svc.EditExpense(user.ID, expense.ID, ExpenseUpdateFields{Amount: &bad})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects another user's expense", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, owner.ID, "Food", 1000, date(2025, 1, 5))

		name := "hijack"
		_, err := svc.EditExpense(other.ID, expense.ID, ExpenseUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewExpenseService(db)

	t.Run("restores the amount to the live budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))

		expense, err := svc.AddExpense(user.ID, "Food", "Groceries", 25000, date(2025, 1, 5), "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 100000 {
			t.Errorf("expected remaining restored to 100000, got %d", reloaded.CurrentAmount)
		}

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected 0 expenses, got %d", count)
		}
	})

	t.Run("restores the edited amount, not the original deduction", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, 100000, date(2025, 1, 1), date(2025, 1, 31))

		expense, err := svc.AddExpense(user.ID, "Food", "Groceries", 25000, date(2025, 1, 5), "")
		testutil.AssertNoError(t, err)

		newAmount := int64(40000)
		_, err = svc.EditExpense(user.ID, expense.ID, ExpenseUpdateFields{Amount: &newAmount})
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

		// Edit left the balance at 75000, so restoring the stored 40000
		// lands above the original total.
		var reloaded models.Budget
		testutil.AssertNoError(t, db.First(&reloaded, budget.ID).Error)
		if reloaded.CurrentAmount != 115000 {
			t.Errorf("expected remaining 115000, got %d", reloaded.CurrentAmount)
		}
	})

	t.Run("returns not found for missing expense", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		err := svc.DeleteExpense(user.ID, 99999)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}
