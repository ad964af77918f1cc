package models

import "time"

// Goal is a savings goal. Goals have no recurrence or budget coupling.
type Goal struct {
	Base
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Name        string     `gorm:"not null" json:"name"`
	Amount      int64      `gorm:"not null" json:"amount"`
	Saved       int64      `gorm:"not null;default:0" json:"saved"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}
