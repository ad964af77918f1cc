package models

import "time"

// Expense is a single spend logged against the owner's live budget period.
type Expense struct {
	Base
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Category    string    `gorm:"not null" json:"category"`
	Name        string    `gorm:"not null" json:"name"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `json:"description"`
}
