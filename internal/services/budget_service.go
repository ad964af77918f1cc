package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// budgetService owns the budget period lifecycle: creating a period, closing
// it into history, and resetting expense state for the next one.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget establishes a new budget period for the user. If a live period
// already exists it is archived first; archival, expense reset, replacement of
// the old period and creation of the new one are a single transaction.
func (s *budgetService) CreateBudget(userID uint, totalAmount int64, startDate, endDate time.Time) (*models.Budget, error) {
	if totalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must be after start date")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	budget := &models.Budget{
		UserID:        userID,
		TotalAmount:   totalAmount,
		CurrentAmount: totalAmount,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Budget
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == nil:
			if err := archivePeriod(tx, &existing); err != nil {
				return err
			}
			if err := resetPeriod(tx, &existing); err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrStorage, err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}

		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// UpdateBudget closes the current period and reopens it with the given
// overrides. Archival always happens, even when no field changes: the
// operation means "close this period", not "patch these fields". Supplying a
// total amount resets the remaining balance to it; partial spend is never
// carried into the new period.
func (s *budgetService) UpdateBudget(userID uint, fields BudgetUpdateFields) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("user_id = ?", userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	newStart := budget.StartDate
	if fields.StartDate != nil {
		newStart = *fields.StartDate
	}
	newEnd := budget.EndDate
	if fields.EndDate != nil {
		newEnd = *fields.EndDate
	}
	if !newEnd.After(newStart) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must be after start date")
	}
	if fields.TotalAmount != nil && *fields.TotalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := archivePeriod(tx, &budget); err != nil {
			return err
		}
		if err := resetPeriod(tx, &budget); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"start_date": newStart,
			"end_date":   newEnd,
		}
		if fields.TotalAmount != nil {
			updates["total_amount"] = *fields.TotalAmount
			updates["current_amount"] = *fields.TotalAmount
		}
		if err := tx.Model(&budget).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload to get fresh data
	if err := s.db.First(&budget, budget.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &budget, nil
}

// GetHistory returns the user's archived periods, newest first.
func (s *budgetService) GetHistory(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.BudgetHistory], error) {
	page.Defaults()

	base := s.db.Model(&models.BudgetHistory{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var history []models.BudgetHistory
	if err := base.Preload("Transactions").
		Scopes(pagination.Paginate(page)).
		Order("archived_at DESC").
		Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(history, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// resetPeriod deletes every expense of the period's owner. The closed window's
// expenses are already snapshotted in history at this point.
func resetPeriod(tx *gorm.DB, budget *models.Budget) error {
	if err := tx.Where("user_id = ?", budget.UserID).Delete(&models.Expense{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
