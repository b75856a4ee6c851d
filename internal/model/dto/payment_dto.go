package dto

import "time"

type SubmitPaymentRequest struct {
	UserNote string `json:"user_note" binding:"required"`
}

type PaymentItem struct {
	ID            int64     `json:"id"`
	PlanID        int64     `json:"plan_id"`
	PlanName      string    `json:"plan_name"`
	UserEmail     string    `json:"user_email,omitempty"`
	AmountPKR     int       `json:"amount_pkr"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id"`
	UserNote      string    `json:"user_note"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentFilter narrows the admin payment listing.
type PaymentFilter struct {
	UserEmail string `form:"user_email"`
	PlanID    int64  `form:"plan_id"`
	Status    string `form:"status"`
}
