package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "budgeteer/internal/errors"
	"budgeteer/internal/models"
	"budgeteer/internal/recurrence"
)

// Achievement tiers awarded on period closure, by percentage of the budget
// left unspent.
const (
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
	TierFinisher = "Budget Finisher"
)

// achievementTier maps the remaining share of a closed budget to its tier.
func achievementTier(totalAmount, remainingAmount int64) string {
	if totalAmount <= 0 {
		return TierFinisher
	}
	percent := float64(remainingAmount) / float64(totalAmount) * 100
	switch {
	case percent >= 30:
		return TierGold
	case percent >= 15:
		return TierSilver
	case percent >= 5:
		return TierBronze
	default:
		return TierFinisher
	}
}

// archivePeriod snapshots the closing period into an immutable BudgetHistory
// record: every expense in the window plus every subscription occurrence the
// window contains (the whole period, not just occurrences due so far).
// It runs inside the caller's transaction so the snapshot and the subsequent
// expense reset commit or roll back together.
func archivePeriod(tx *gorm.DB, budget *models.Budget) error {
	var expenses []models.Expense
	if err := tx.Where("user_id = ? AND date >= ? AND date <= ?",
		budget.UserID, budget.StartDate, budget.EndDate).
		Order("date ASC").
		Find(&expenses).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	var subscriptions []models.Subscription
	if err := tx.Where("user_id = ?", budget.UserID).Find(&subscriptions).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}

	transactions := make([]models.ArchivedTransaction, 0, len(expenses))
	for _, e := range expenses {
		transactions = append(transactions, models.ArchivedTransaction{
			Category:    e.Category,
			Name:        e.Name,
			Amount:      e.Amount,
			Date:        e.Date,
			Description: e.Description,
		})
	}

	for _, sub := range subscriptions {
		for _, occ := range recurrence.Project(sub, budget.StartDate, budget.EndDate, nil) {
			transactions = append(transactions, models.ArchivedTransaction{
				Category:    occ.Category,
				Name:        occ.Name + " (Subscription)",
				Amount:      occ.Amount,
				Date:        occ.Date,
				Description: fmt.Sprintf("Recurring %s payment", sub.Cycle),
			})
		}
	}

	history := &models.BudgetHistory{
		UserID:          budget.UserID,
		TotalAmount:     budget.TotalAmount,
		RemainingAmount: budget.CurrentAmount,
		StartDate:       budget.StartDate,
		EndDate:         budget.EndDate,
		Achievement:     achievementTier(budget.TotalAmount, budget.CurrentAmount),
		ArchivedAt:      time.Now(),
		Transactions:    transactions,
	}

	if err := tx.Create(history).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
