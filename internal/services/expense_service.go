package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
)

// expenseService handles expense writes against the live budget period.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// AddExpense persists an expense and decrements the live budget's remaining
// amount in one transaction. The decrement is guarded on the stored balance
// (`current_amount >= amount`), so two concurrent adds for the same user
// cannot drive the balance below zero: the second one sees zero affected rows
// and the whole transaction rolls back.
func (s *expenseService) AddExpense(userID uint, category, name string, amount int64, date time.Time, description string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if date.IsZero() {
		date = time.Now()
	}

	var budget models.Budget
	if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if budget.CurrentAmount < amount {
		return nil, apperrors.ErrInsufficientBudget
	}

	expense := &models.Expense{
		UserID:      userID,
		Category:    category,
		Name:        name,
		Amount:      amount,
		Date:        date,
		Description: description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		res := tx.Model(&models.Budget{}).
			Where("id = ? AND current_amount >= ?", budget.ID, amount).
			UpdateColumn("current_amount", gorm.Expr("current_amount - ?", amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStorage, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInsufficientBudget
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// EditExpense updates expense fields in place. Changing the amount does not
// re-adjust the live budget's remaining balance; only add and delete move it.
func (s *expenseService) EditExpense(userID, expenseID uint, fields ExpenseUpdateFields) (*models.Expense, error) {
	expense, err := s.getExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := s.db.First(expense, expense.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	return expense, nil
}

// DeleteExpense removes an expense and restores its amount to the owner's
// live budget, if one still exists, in one transaction.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.getExpense(userID, expenseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Budget{}).
			Where("user_id = ?", userID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", expense.Amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrStorage, res.Error)
		}

		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
}

func (s *expenseService) getExpense(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &expense, nil
}
