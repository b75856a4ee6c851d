package model

import (
	"time"
)

// UnlimitedLimit marks a question-type limit as uncapped.
const UnlimitedLimit = -1

type Plan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PricePKR     int       `gorm:"not null" json:"price_pkr"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	MCQLimit     int       `gorm:"column:mcq_limit;not null" json:"mcq_limit"`
	ShortLimit   int       `gorm:"not null" json:"short_limit"`
	LongLimit    int       `gorm:"not null" json:"long_limit"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// Unlimited reports whether every question type is uncapped.
func (p *Plan) Unlimited() bool {
	return p.MCQLimit == UnlimitedLimit && p.ShortLimit == UnlimitedLimit && p.LongLimit == UnlimitedLimit
}
