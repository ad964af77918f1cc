package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgeteer/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: fmt.Sprintf("testuser%d", nextID()),
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a live budget period with the given total amount
// (in cents) spanning the given dates. CurrentAmount starts equal to
// TotalAmount.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint, totalAmount int64, startDate, endDate time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:        userID,
		TotalAmount:   totalAmount,
		CurrentAmount: totalAmount,
		StartDate:     startDate,
		EndDate:       endDate,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates an expense with the given amount (in cents) on the
// given date. It does not touch any budget balance; use the expense service
// for that.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, category string, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		Category: category,
		Name:     fmt.Sprintf("Test Expense %d", nextID()),
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestSubscription creates a subscription with the given cycle and
// amount (in cents), anchored at startDate.
func CreateTestSubscription(t *testing.T, db *gorm.DB, userID uint, cycle models.SubscriptionCycle, amount int64, startDate time.Time) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Subscription %d", nextID()),
		Amount:    amount,
		Cycle:     cycle,
		Category:  models.DefaultSubscriptionCategory,
		StartDate: startDate,
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test subscription: %v", err)
	}
	return sub
}

// CreateTestGoal creates a savings goal with the given target amount (in cents).
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, amount int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID: userID,
		Name:   fmt.Sprintf("Test Goal %d", nextID()),
		Amount: amount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
