package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetActiveByUserID returns the user's active subscription, or nil when
// none exists (at most one active subscription per user is an invariant
// enforced by the service layer).
func (r *SubscriptionRepository) GetActiveByUserID(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ExistsByUserAndPlan reports whether the user ever held a subscription to
// the plan, regardless of status.
func (r *SubscriptionRepository) ExistsByUserAndPlan(userID, planID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND plan_id = ?", userID, planID).Count(&count).Error
	return count > 0, err
}

func (r *SubscriptionRepository) ListByUserID(userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) Deactivate(id int64) error {
	return r.db.Model(&model.Subscription{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// DeactivateAllByUserID turns off every active subscription of the user.
func (r *SubscriptionRepository) DeactivateAllByUserID(userID int64) error {
	return r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}

func (r *SubscriptionRepository) Delete(id int64) error {
	return r.db.Delete(&model.Subscription{}, id).Error
}

func (r *SubscriptionRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *SubscriptionRepository) CountActiveByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).Count(&count).Error
	return count, err
}
