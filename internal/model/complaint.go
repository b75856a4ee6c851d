package model

import (
	"time"
)

const (
	ComplaintStatusPending  = "pending"
	ComplaintStatusResolved = "resolved"
)

type Complaint struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Status        string    `gorm:"size:20;default:pending" json:"status"`
	AdminResponse string    `gorm:"type:text" json:"admin_response"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Complaint) TableName() string {
	return "complaints"
}
