package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Username      string     `gorm:"not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	Gender        string     `json:"gender"`
	Age           int        `json:"age"`
	DOB           *time.Time `json:"dob,omitempty"`
	WorkingStatus string     `json:"working_status"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	Budgets       []Budget       `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses      []Expense      `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Subscriptions []Subscription `gorm:"foreignKey:UserID" json:"subscriptions,omitempty"`
	Goals         []Goal         `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}
