package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
)

// SeedPlans creates the default plan catalogue on first boot and adds a
// yearly variant for every paid monthly plan. Yearly plans cost ten
// monthly prices, two months free. Both steps are idempotent.
func SeedPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Plan{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count plans: %w", err)
	}

	if count == 0 {
		defaults := []model.Plan{
			{Name: "Free", PricePKR: 0, DurationDays: 30, MCQLimit: 10, ShortLimit: 5, LongLimit: 2, IsActive: true},
			{Name: "Basic", PricePKR: 500, DurationDays: 30, MCQLimit: 50, ShortLimit: 25, LongLimit: 10, IsActive: true},
			{Name: "Pro", PricePKR: 1000, DurationDays: 30, MCQLimit: 100, ShortLimit: 50, LongLimit: 25, IsActive: true},
			{Name: "Enterprise", PricePKR: 2000, DurationDays: 30, MCQLimit: model.UnlimitedLimit, ShortLimit: model.UnlimitedLimit, LongLimit: model.UnlimitedLimit, IsActive: true},
		}
		if err := db.Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to seed default plans: %w", err)
		}
		log.Printf("Seeded %d default plans", len(defaults))
	}

	var monthlyPaid []model.Plan
	if err := db.Where("price_pkr > ? AND duration_days = ?", 0, 30).Find(&monthlyPaid).Error; err != nil {
		return fmt.Errorf("failed to list paid plans: %w", err)
	}

	for _, plan := range monthlyPaid {
		yearlyName := plan.Name + " Yearly"

		var existing int64
		if err := db.Model(&model.Plan{}).Where("name = ?", yearlyName).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check yearly plan %q: %w", yearlyName, err)
		}
		if existing > 0 {
			continue
		}

		yearly := model.Plan{
			Name:         yearlyName,
			PricePKR:     plan.PricePKR * 10,
			DurationDays: 365,
			MCQLimit:     plan.MCQLimit,
			ShortLimit:   plan.ShortLimit,
			LongLimit:    plan.LongLimit,
			IsActive:     true,
		}
		if err := db.Create(&yearly).Error; err != nil {
			return fmt.Errorf("failed to seed yearly plan %q: %w", yearlyName, err)
		}
		log.Printf("Seeded yearly plan %q", yearlyName)
	}

	return nil
}
