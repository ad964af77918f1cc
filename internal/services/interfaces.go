package services

import (
	"time"

	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(username, email, password, gender string, age int, dob *time.Time, workingStatus string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// BudgetUpdateFields holds optional overrides applied when a budget period is
// closed and reopened. Nil fields keep the previous period's value.
type BudgetUpdateFields struct {
	TotalAmount *int64
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetServicer defines the contract for the budget period lifecycle.
type BudgetServicer interface {
	CreateBudget(userID uint, totalAmount int64, startDate, endDate time.Time) (*models.Budget, error)
	UpdateBudget(userID uint, fields BudgetUpdateFields) (*models.Budget, error)
	GetHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetHistory], error)
}

// BalanceView is the display balance of the live period: the persisted
// remaining amount minus subscription occurrences due so far, floored at zero.
type BalanceView struct {
	TotalAmount   int64     `json:"total_amount"`
	CurrentAmount int64     `json:"current_amount"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

// CategoryShare is one category's slice of total spend in the live period.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// DailyTotal is the combined spend of a single calendar day.
type DailyTotal struct {
	Date        string `json:"date"`
	TotalAmount int64  `json:"total_amount"`
}

// LedgerEntry is one row of the merged ledger: either a real expense or a
// synthesized subscription occurrence.
type LedgerEntry struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Name           string    `json:"name"`
	Amount         int64     `json:"amount"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	IsSubscription bool      `json:"is_subscription"`
}

// LedgerServicer defines the contract for the merged read views over the live
// budget period. Every view combines persisted expenses with projected
// subscription occurrences through the same recurrence projection.
type LedgerServicer interface {
	GetBalance(userID uint) (*BalanceView, error)
	GetCategoryBreakdown(userID uint) ([]CategoryShare, error)
	GetDailySeries(userID uint) ([]DailyTotal, error)
	GetLedger(userID uint) ([]LedgerEntry, error)
	GetExpensesByRange(userID uint, from, to time.Time) ([]models.Expense, error)
}

// ExpenseUpdateFields holds optional field updates for an expense.
type ExpenseUpdateFields struct {
	Category    *string
	Name        *string
	Amount      *int64
	Date        *time.Time
	Description *string
}

// ExpenseServicer defines the contract for expense writes against the live budget.
type ExpenseServicer interface {
	AddExpense(userID uint, category, name string, amount int64, date time.Time, description string) (*models.Expense, error)
	EditExpense(userID, expenseID uint, fields ExpenseUpdateFields) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
}

// SubscriptionServicer defines the contract for subscription definitions.
type SubscriptionServicer interface {
	CreateSubscription(userID uint, name string, amount int64, cycle models.SubscriptionCycle, category string, startDate time.Time) (*models.Subscription, error)
	GetUserSubscriptions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subscription], error)
	DeleteSubscription(userID, subscriptionID uint) error
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID uint, name string, amount, saved int64, description string, startDate, endDate *time.Time) (*models.Goal, error)
	GetUserGoals(userID uint) ([]models.Goal, error)
	UpdateGoal(userID, goalID uint, amount, saved *int64) (*models.Goal, error)
	AddSaved(userID, goalID uint, delta int64) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}
