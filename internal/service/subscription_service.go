package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/userlock"
	"github.com/examgen/examgen_go_server/internal/repository"
)

var (
	ErrPlanNotFound          = errors.New("plan not found")
	ErrActiveSubExists       = errors.New("an active subscription already exists")
	ErrAlreadySubscribed     = errors.New("this plan was already subscribed to before")
	ErrPaymentRequired       = errors.New("paid plans require a verified payment")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrNotSubscriptionOwner  = errors.New("subscription belongs to another user")
	ErrSubscriptionStillLive = errors.New("active subscriptions cannot be deleted")
)

// SubscriptionService manages the subscription lifecycle. Mutations are
// serialized per user through a Redis lease so concurrent requests
// cannot create two active subscriptions.
type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.PlanRepository
	locker   *userlock.Locker
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, planRepo *repository.PlanRepository, locker *userlock.Locker) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		planRepo: planRepo,
		locker:   locker,
	}
}

// Subscribe activates a free plan for the user. Paid plans go through
// the payment workflow instead; asking for one fails with
// ErrPaymentRequired. A user may never subscribe to the same plan twice,
// even after cancellation.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, planID int64) (*dto.SubscriptionItem, error) {
	if s.locker != nil {
		if err := s.locker.Acquire(ctx, userID); err != nil {
			return nil, err
		}
		defer s.locker.Release(ctx, userID)
	}

	active, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveSubExists
	}

	exists, err := s.subRepo.ExistsByUserAndPlan(userID, planID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.PricePKR > 0 {
		return nil, ErrPaymentRequired
	}

	now := time.Now().UTC()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour),
		IsActive:  true,
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	return buildSubscriptionItem(sub, plan, now), nil
}

// Cancel deactivates a subscription owned by the user.
func (s *SubscriptionService) Cancel(userID, subID int64) error {
	sub, err := s.getOwned(userID, subID)
	if err != nil {
		return err
	}
	return s.subRepo.Deactivate(sub.ID)
}

// List returns the user's subscription history, newest first. Active
// rows past their end date are flipped to inactive on the way out, so
// expiry needs no background job.
func (s *SubscriptionService) List(userID int64) ([]*dto.SubscriptionItem, error) {
	subs, err := s.subRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*dto.SubscriptionItem, 0, len(subs))
	for _, sub := range subs {
		if sub.IsActive && sub.EndDate.Before(now) {
			if err := s.subRepo.Deactivate(sub.ID); err != nil {
				return nil, err
			}
		}

		plan, err := s.planRepo.GetByID(sub.PlanID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		items = append(items, buildSubscriptionItem(sub, plan, now))
	}
	return items, nil
}

// DeleteHistory removes an inactive subscription record.
func (s *SubscriptionService) DeleteHistory(userID, subID int64) error {
	sub, err := s.getOwned(userID, subID)
	if err != nil {
		return err
	}

	if sub.IsActive && !sub.EndDate.Before(time.Now().UTC()) {
		return ErrSubscriptionStillLive
	}
	return s.subRepo.Delete(sub.ID)
}

// GetActive returns the user's active subscription, nil when none.
func (s *SubscriptionService) GetActive(userID int64) (*model.Subscription, error) {
	return s.subRepo.GetActiveByUserID(userID)
}

func (s *SubscriptionService) getOwned(userID, subID int64) (*model.Subscription, error) {
	sub, err := s.subRepo.GetByID(subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrNotSubscriptionOwner
	}
	return sub, nil
}

func buildSubscriptionItem(sub *model.Subscription, plan *model.Plan, now time.Time) *dto.SubscriptionItem {
	item := &dto.SubscriptionItem{
		ID:        sub.ID,
		PlanID:    sub.PlanID,
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Status:    sub.Status(now),
	}
	if plan != nil {
		item.PlanName = plan.Name
	}
	return item
}
