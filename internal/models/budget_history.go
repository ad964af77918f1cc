package models

import "time"

// BudgetHistory is the immutable archive of a closed budget period. It is
// written exactly once, when the period is closed, and embeds the full
// transaction snapshot (real expenses plus materialized subscription
// occurrences for the window).
type BudgetHistory struct {
	Base
	UserID          uint                  `gorm:"index;not null" json:"user_id"`
	TotalAmount     int64                 `gorm:"not null" json:"total_amount"`
	RemainingAmount int64                 `gorm:"not null" json:"remaining_amount"`
	StartDate       time.Time             `gorm:"not null" json:"start_date"`
	EndDate         time.Time             `gorm:"not null" json:"end_date"`
	Achievement     string                `json:"achievement"`
	ArchivedAt      time.Time             `gorm:"not null" json:"archived_at"`
	Transactions    []ArchivedTransaction `gorm:"foreignKey:BudgetHistoryID" json:"transactions"`
}

// ArchivedTransaction is one line of a BudgetHistory snapshot.
type ArchivedTransaction struct {
	Base
	BudgetHistoryID uint      `gorm:"index;not null" json:"-"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	Amount          int64     `json:"amount"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
}
