package model

import (
	"time"
)

// Derived subscription statuses. Only is_active is stored; Expired is
// computed (and persisted back) when a subscription is read past its end
// date.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

type Subscription struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	PlanID    int64     `gorm:"not null;index" json:"plan_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// Status derives the lifecycle state at the given instant. The end date
// is checked before the stored flag so a subscription that ran out keeps
// reading as expired after the lazy flip persists is_active = false.
func (s *Subscription) Status(now time.Time) string {
	if s.EndDate.Before(now) {
		return SubscriptionStatusExpired
	}
	if !s.IsActive {
		return SubscriptionStatusCancelled
	}
	return SubscriptionStatusActive
}
