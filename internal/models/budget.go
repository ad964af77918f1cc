package models

import "time"

// Budget is the live budget period for a user. At most one exists per user
// at any time; closing a period replaces it and leaves a BudgetHistory record.
// Amounts are stored in cents.
type Budget struct {
	Base
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	TotalAmount   int64     `gorm:"not null" json:"total_amount"`
	CurrentAmount int64     `gorm:"not null" json:"current_amount"`
	StartDate     time.Time `gorm:"not null" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
}
