package dto

import "time"

type SubscribeRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

type SubscriptionItem struct {
	ID        int64     `json:"id"`
	PlanID    int64     `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"` // active, expired, cancelled
}
