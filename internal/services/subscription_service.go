package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/pagination"
)

// subscriptionService handles subscription definitions. Occurrences are never
// written here; they are derived by the recurrence package at read time.
type subscriptionService struct {
	db *gorm.DB
}

// NewSubscriptionService creates a new SubscriptionServicer.
func NewSubscriptionService(db *gorm.DB) SubscriptionServicer {
	return &subscriptionService{db: db}
}

// CreateSubscription registers a recurring payment for the user.
func (s *subscriptionService) CreateSubscription(userID uint, name string, amount int64, cycle models.SubscriptionCycle, category string, startDate time.Time) (*models.Subscription, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "subscription name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if cycle != models.CycleMonthly && cycle != models.CycleYearly {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cycle must be Monthly or Yearly")
	}
	if startDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date is required")
	}
	if category == "" {
		category = models.DefaultSubscriptionCategory
	}

	subscription := &models.Subscription{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		Cycle:     cycle,
		Category:  category,
		StartDate: startDate,
	}

	if err := s.db.Create(subscription).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return subscription, nil
}

// GetUserSubscriptions returns the user's subscriptions ordered by start date.
func (s *subscriptionService) GetUserSubscriptions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Subscription], error) {
	page.Defaults()

	base := s.db.Model(&models.Subscription{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var subscriptions []models.Subscription
	if err := base.Scopes(pagination.Paginate(page)).
		Order("start_date ASC").
		Find(&subscriptions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	result := pagination.NewPageResponse(subscriptions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteSubscription removes a subscription definition. Future reads simply
// stop projecting it; archived history keeps its past occurrences.
func (s *subscriptionService) DeleteSubscription(userID, subscriptionID uint) error {
	var subscription models.Subscription
	if err := s.db.Where("id = ? AND user_id = ?", subscriptionID, userID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubscriptionNotFound
		}
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	if err := s.db.Delete(&subscription).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
