package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/recurrence"
)

// ledgerService produces the merged read views over the live budget period.
// All four views project subscriptions through recurrence.Project, so the
// virtual transactions they see are identical for identical inputs.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// GetBalance returns the display balance of the live period: the persisted
// remaining amount minus subscription occurrences due up to today, floored at
// zero. The persisted Budget row is never mutated by this view.
func (s *ledgerService) GetBalance(userID uint) (*BalanceView, error) {
	budget, err := s.liveBudget(userID)
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.userSubscriptions(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var dueSoFar int64
	for _, sub := range subscriptions {
		for _, occ := range recurrence.Project(sub, budget.StartDate, budget.EndDate, &now) {
			dueSoFar += occ.Amount
		}
	}

	current := budget.CurrentAmount - dueSoFar
	if current < 0 {
		current = 0
	}

	return &BalanceView{
		TotalAmount:   budget.TotalAmount,
		CurrentAmount: current,
		StartDate:     budget.StartDate,
		EndDate:       budget.EndDate,
	}, nil
}

// GetCategoryBreakdown returns per-category spend (real expenses plus
// subscription occurrences due so far) with each category's percentage of the
// total, rounded to two decimal places.
func (s *ledgerService) GetCategoryBreakdown(userID uint) ([]CategoryShare, error) {
	budget, err := s.liveBudget(userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.windowExpenses(userID, budget, "")
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.userSubscriptions(userID)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]int64)
	for _, e := range expenses {
		sums[e.Category] += e.Amount
	}

	now := time.Now()
	for _, sub := range subscriptions {
		for _, occ := range recurrence.Project(sub, budget.StartDate, budget.EndDate, &now) {
			sums[occ.Category] += occ.Amount
		}
	}

	var total int64
	for _, amount := range sums {
		total += amount
	}

	categories := make([]string, 0, len(sums))
	for category := range sums {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	shares := make([]CategoryShare, 0, len(categories))
	for _, category := range categories {
		share := CategoryShare{Category: category, Amount: sums[category]}
		if total > 0 {
			share.Percentage = decimal.NewFromInt(sums[category]).
				Div(decimal.NewFromInt(total)).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				InexactFloat64()
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// GetDailySeries returns spend per calendar day over the whole live period
// (no as-of cutoff), ascending by date.
func (s *ledgerService) GetDailySeries(userID uint) ([]DailyTotal, error) {
	budget, err := s.liveBudget(userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.windowExpenses(userID, budget, "")
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.userSubscriptions(userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64)
	for _, e := range expenses {
		totals[e.Date.Format("2006-01-02")] += e.Amount
	}
	for _, sub := range subscriptions {
		for _, occ := range recurrence.Project(sub, budget.StartDate, budget.EndDate, nil) {
			totals[occ.Date.Format("2006-01-02")] += occ.Amount
		}
	}

	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]DailyTotal, 0, len(days))
	for _, day := range days {
		series = append(series, DailyTotal{Date: day, TotalAmount: totals[day]})
	}

	return series, nil
}

// GetLedger returns the full merged ledger for the live period: real expenses
// plus one synthesized entry per subscription occurrence due so far, sorted by
// date descending. Synthetic entries carry a deterministic id derived from the
// subscription and the occurrence date.
func (s *ledgerService) GetLedger(userID uint) ([]LedgerEntry, error) {
	budget, err := s.liveBudget(userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.windowExpenses(userID, budget, "date DESC")
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.userSubscriptions(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(expenses))
	for _, e := range expenses {
		entries = append(entries, LedgerEntry{
			ID:          strconv.FormatUint(uint64(e.ID), 10),
			Category:    e.Category,
			Name:        e.Name,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: e.Description,
		})
	}

	now := time.Now()
	for _, sub := range subscriptions {
		for _, occ := range recurrence.Project(sub, budget.StartDate, budget.EndDate, &now) {
			entries = append(entries, LedgerEntry{
				ID:             fmt.Sprintf("sub-%d-%s", occ.SubscriptionID, occ.Date.Format("2006-01-02")),
				Category:       occ.Category,
				Name:           occ.Name + " (Subscription)",
				Amount:         occ.Amount,
				Date:           occ.Date,
				Description:    fmt.Sprintf("Recurring %s payment", sub.Cycle),
				IsSubscription: true,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}

// GetExpensesByRange returns the raw expenses in [from, to], without virtual
// occurrences merged in.
func (s *ledgerService) GetExpensesByRange(userID uint, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if len(expenses) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrExpenseNotFound, "No expenses found for the specified duration")
	}
	return expenses, nil
}

func (s *ledgerService) liveBudget(userID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &budget, nil
}

func (s *ledgerService) windowExpenses(userID uint, budget *models.Budget, order string) ([]models.Expense, error) {
	q := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, budget.StartDate, budget.EndDate)
	if order != "" {
		q = q.Order(order)
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return expenses, nil
}

func (s *ledgerService) userSubscriptions(userID uint) ([]models.Subscription, error) {
	var subscriptions []models.Subscription
	if err := s.db.Where("user_id = ?", userID).Find(&subscriptions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return subscriptions, nil
}
