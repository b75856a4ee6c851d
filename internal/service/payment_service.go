package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/email"
	"github.com/examgen/examgen_go_server/internal/pkg/userlock"
	"github.com/examgen/examgen_go_server/internal/repository"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNotPaymentOwner     = errors.New("payment belongs to another user")
	ErrPaymentNotPending   = errors.New("payment is not pending")
	ErrPaymentStillPending = errors.New("pending payments must be cancelled before deletion")
	ErrPlanNotPaid         = errors.New("this plan does not require payment")
)

const paymentMethod = "NayaPay"

// PaymentService runs the manual payment approval workflow: users submit
// a payment reference, admins verify and approve or reject it. Approval
// atomically retires the user's current subscription and starts the paid
// one.
type PaymentService struct {
	db          *gorm.DB
	paymentRepo *repository.PaymentRepository
	subRepo     *repository.SubscriptionRepository
	planRepo    *repository.PlanRepository
	userRepo    *repository.UserRepository
	locker      *userlock.Locker
	emailSvc    *email.Service
}

func NewPaymentService(
	db *gorm.DB,
	paymentRepo *repository.PaymentRepository,
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
	userRepo *repository.UserRepository,
	locker *userlock.Locker,
	emailSvc *email.Service,
) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		subRepo:     subRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
		locker:      locker,
		emailSvc:    emailSvc,
	}
}

// Submit records a pending payment for a paid plan. The user_note holds
// the reference the user claims to have paid with; the server mints its
// own transaction ID. Free plans are enrolled directly, never paid for.
func (s *PaymentService) Submit(userID, planID int64, userNote string) (*dto.PaymentItem, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if plan.PricePKR == 0 {
		return nil, ErrPlanNotPaid
	}

	exists, err := s.subRepo.ExistsByUserAndPlan(userID, planID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	txnID, err := generateTransactionID()
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		UserID:        userID,
		PlanID:        plan.ID,
		AmountPKR:     plan.PricePKR,
		Method:        paymentMethod,
		TransactionID: txnID,
		UserNote:      userNote,
		Status:        model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	return s.buildPaymentItem(payment, plan), nil
}

// Cancel lets the user withdraw a payment that is still pending.
func (s *PaymentService) Cancel(userID, paymentID int64) error {
	payment, err := s.getOwned(userID, paymentID)
	if err != nil {
		return err
	}

	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}
	return s.paymentRepo.UpdateStatus(payment.ID, model.PaymentStatusCancelled)
}

// DeleteHistory removes a settled payment record owned by the user.
// Pending payments must be cancelled first.
func (s *PaymentService) DeleteHistory(userID, paymentID int64) error {
	payment, err := s.getOwned(userID, paymentID)
	if err != nil {
		return err
	}

	if payment.Status == model.PaymentStatusPending {
		return ErrPaymentStillPending
	}
	return s.paymentRepo.Delete(payment.ID)
}

// ListByUser returns the user's payments, newest first.
func (s *PaymentService) ListByUser(userID int64) ([]*dto.PaymentItem, error) {
	payments, err := s.paymentRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.buildPaymentItems(payments, false)
}

// Latest returns the user's most recent payment, nil when none exists.
func (s *PaymentService) Latest(userID int64) (*dto.PaymentItem, error) {
	payment, err := s.paymentRepo.GetLatestByUserID(userID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, nil
	}

	plan, err := s.planRepo.GetByID(payment.PlanID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.buildPaymentItem(payment, plan), nil
}

// ListAll returns payments matching the admin filter.
func (s *PaymentService) ListAll(filter *dto.PaymentFilter) ([]*dto.PaymentItem, error) {
	payments, err := s.paymentRepo.ListFiltered(filter)
	if err != nil {
		return nil, err
	}
	return s.buildPaymentItems(payments, true)
}

// Approve completes a pending payment and activates the plan. The old
// active subscription is retired and the new one created in the same
// transaction, under the user's lease.
func (s *PaymentService) Approve(ctx context.Context, paymentID int64) error {
	payment, err := s.get(paymentID)
	if err != nil {
		return err
	}
	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}

	if s.locker != nil {
		if err := s.locker.Acquire(ctx, payment.UserID); err != nil {
			return err
		}
		defer s.locker.Release(ctx, payment.UserID)
	}

	plan, err := s.planRepo.GetByID(payment.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guard against a concurrent approval of the same payment
		res := tx.Model(&model.Payment{}).
			Where("id = ? AND status = ?", payment.ID, model.PaymentStatusPending).
			Update("status", model.PaymentStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPaymentNotPending
		}

		if err := tx.Model(&model.Subscription{}).
			Where("user_id = ? AND is_active = ?", payment.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		sub := &model.Subscription{
			UserID:    payment.UserID,
			PlanID:    payment.PlanID,
			StartDate: now,
			EndDate:   now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour),
			IsActive:  true,
		}
		return tx.Create(sub).Error
	})
	if err != nil {
		return err
	}

	s.notify(payment, plan, true)
	return nil
}

// Reject marks a pending payment as rejected.
func (s *PaymentService) Reject(paymentID int64) error {
	payment, err := s.get(paymentID)
	if err != nil {
		return err
	}
	if payment.Status != model.PaymentStatusPending {
		return ErrPaymentNotPending
	}

	if err := s.paymentRepo.UpdateStatus(payment.ID, model.PaymentStatusRejected); err != nil {
		return err
	}

	plan, err := s.planRepo.GetByID(payment.PlanID)
	if err == nil {
		s.notify(payment, plan, false)
	}
	return nil
}

// Delete removes a payment record, any status. Admin only.
func (s *PaymentService) Delete(paymentID int64) error {
	payment, err := s.get(paymentID)
	if err != nil {
		return err
	}
	return s.paymentRepo.Delete(payment.ID)
}

func (s *PaymentService) get(paymentID int64) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) getOwned(userID, paymentID int64) (*model.Payment, error) {
	payment, err := s.get(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrNotPaymentOwner
	}
	return payment, nil
}

// notify sends the decision email. Failures are logged, never surfaced:
// the approval itself already succeeded.
func (s *PaymentService) notify(payment *model.Payment, plan *model.Plan, approved bool) {
	if s.emailSvc == nil {
		return
	}

	user, err := s.userRepo.GetByID(payment.UserID)
	if err != nil {
		log.Printf("Payment notice: failed to load user %d: %v", payment.UserID, err)
		return
	}

	planName := ""
	if plan != nil {
		planName = plan.Name
	}

	if approved {
		err = s.emailSvc.SendPaymentApproved(user.Email, planName, payment.TransactionID)
	} else {
		err = s.emailSvc.SendPaymentRejected(user.Email, planName, payment.TransactionID)
	}
	if err != nil {
		log.Printf("Payment notice: failed to email %s: %v", user.Email, err)
	}
}

func (s *PaymentService) buildPaymentItem(payment *model.Payment, plan *model.Plan) *dto.PaymentItem {
	item := &dto.PaymentItem{
		ID:            payment.ID,
		PlanID:        payment.PlanID,
		AmountPKR:     payment.AmountPKR,
		Method:        payment.Method,
		TransactionID: payment.TransactionID,
		UserNote:      payment.UserNote,
		Status:        payment.Status,
		CreatedAt:     payment.CreatedAt,
	}
	if plan != nil {
		item.PlanName = plan.Name
	}
	return item
}

func (s *PaymentService) buildPaymentItems(payments []*model.Payment, withEmail bool) ([]*dto.PaymentItem, error) {
	items := make([]*dto.PaymentItem, 0, len(payments))
	for _, payment := range payments {
		plan, err := s.planRepo.GetByID(payment.PlanID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		item := s.buildPaymentItem(payment, plan)
		if withEmail {
			user, err := s.userRepo.GetByID(payment.UserID)
			if err == nil {
				item.UserEmail = user.Email
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func generateTransactionID() (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate transaction id: %w", err)
	}
	return "TXN_" + hex.EncodeToString(bytes), nil
}
