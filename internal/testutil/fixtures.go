package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
)

// TestUser creates a user row for tests.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Name:         fmt.Sprintf("Test User %d", time.Now().UnixNano()%10000),
		Email:        fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		PasswordHash: &passwordHash,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail sets the user email.
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithName sets the user name.
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// AsAdmin marks the user as an administrator.
func AsAdmin() func(*model.User) {
	return func(u *model.User) {
		u.IsAdmin = true
	}
}

// TestPlan creates a plan row for tests.
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.Plan)) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		Name:         fmt.Sprintf("Plan %d", time.Now().UnixNano()%100000),
		PricePKR:     500,
		DurationDays: 30,
		MCQLimit:     50,
		ShortLimit:   25,
		LongLimit:    10,
		IsActive:     true,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithPrice sets the plan price.
func WithPrice(pricePKR int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.PricePKR = pricePKR
	}
}

// WithLimits sets the per-kind question limits.
func WithLimits(mcq, short, long int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.MCQLimit = mcq
		p.ShortLimit = short
		p.LongLimit = long
	}
}

// WithDuration sets the plan duration in days.
func WithDuration(days int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.DurationDays = days
	}
}

// Inactive hides the plan from the public listing.
func Inactive() func(*model.Plan) {
	return func(p *model.Plan) {
		p.IsActive = false
	}
}

// TestSubscription creates a subscription row for tests. Active with a
// 30-day window unless overridden.
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now().UTC()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: now,
		EndDate:   now.Add(30 * 24 * time.Hour),
		IsActive:  true,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// Expired backdates the subscription window so it is already past its end.
func Expired() func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.StartDate = time.Now().UTC().Add(-60 * 24 * time.Hour)
		s.EndDate = time.Now().UTC().Add(-30 * 24 * time.Hour)
	}
}

// Cancelled marks the subscription inactive.
func Cancelled() func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.IsActive = false
	}
}

// TestPayment creates a pending payment row for tests.
func TestPayment(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Payment)) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		UserID:        userID,
		PlanID:        planID,
		AmountPKR:     500,
		Method:        "NayaPay",
		TransactionID: fmt.Sprintf("TXN_test_%d", time.Now().UnixNano()),
		UserNote:      "ref-12345",
		Status:        model.PaymentStatusPending,
	}

	for _, opt := range opts {
		opt(payment)
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// WithPaymentStatus sets the payment status.
func WithPaymentStatus(status string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Status = status
	}
}

// TestComplaint creates a complaint row for tests.
func TestComplaint(t *testing.T, db *gorm.DB, userID int64, content string) *model.Complaint {
	t.Helper()

	complaint := &model.Complaint{
		UserID:  userID,
		Content: content,
		Status:  model.ComplaintStatusPending,
	}

	if err := db.Create(complaint).Error; err != nil {
		t.Fatalf("Failed to create test complaint: %v", err)
	}

	return complaint
}
