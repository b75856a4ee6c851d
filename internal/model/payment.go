package model

import (
	"time"
)

// Payment statuses. pending is the only non-terminal state.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

type Payment struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	PlanID        int64     `gorm:"not null;index" json:"plan_id"`
	AmountPKR     int       `gorm:"not null" json:"amount_pkr"`
	Method        string    `gorm:"size:50;not null" json:"method"`
	TransactionID string    `gorm:"size:100;uniqueIndex" json:"transaction_id"`
	UserNote      string    `gorm:"type:text" json:"user_note"`
	Status        string    `gorm:"size:20;default:pending;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
