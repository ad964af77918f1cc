package models

import "time"

// SubscriptionCycle is the recurrence cycle of a subscription.
type SubscriptionCycle string

const (
	CycleMonthly SubscriptionCycle = "Monthly"
	CycleYearly  SubscriptionCycle = "Yearly"
)

// DefaultSubscriptionCategory is used when a subscription has no category.
const DefaultSubscriptionCategory = "Subscription"

// Subscription is a recurring payment definition. It stores only the anchor
// start date and the cycle; concrete occurrences are derived at read time and
// never persisted. Subscriptions outlive budget periods.
type Subscription struct {
	Base
	UserID    uint              `gorm:"index;not null" json:"user_id"`
	Name      string            `gorm:"not null" json:"name"`
	Amount    int64             `gorm:"not null" json:"amount"`
	Cycle     SubscriptionCycle `gorm:"not null" json:"cycle"`
	Category  string            `gorm:"not null;default:Subscription" json:"category"`
	StartDate time.Time         `gorm:"not null" json:"start_date"`
}
