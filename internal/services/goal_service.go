package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
)

// goalService handles savings goals. Goals have no recurrence and no coupling
// to the budget period.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a savings goal for the user.
func (s *goalService) CreateGoal(userID uint, name string, amount, saved int64, description string, startDate, endDate *time.Time) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if saved < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	goal := &models.Goal{
		UserID:      userID,
		Name:        name,
		Amount:      amount,
		Saved:       saved,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return goal, nil
}

// GetUserGoals returns all goals for the user.
func (s *goalService) GetUserGoals(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return goals, nil
}

// UpdateGoal sets the goal's target and/or saved amounts.
func (s *goalService) UpdateGoal(userID, goalID uint, amount, saved *int64) (*models.Goal, error) {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if saved != nil {
		if *saved < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "saved amount cannot be negative")
		}
		updates["saved"] = *saved
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if err := s.db.First(goal, goal.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	return goal, nil
}

// AddSaved increments the goal's saved amount by delta.
func (s *goalService) AddSaved(userID, goalID uint, delta int64) (*models.Goal, error) {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).
		UpdateColumn("saved", gorm.Expr("saved + ?", delta)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if err := s.db.First(goal, goal.ID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return goal, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

func (s *goalService) getGoal(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &goal, nil
}
