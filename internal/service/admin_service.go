package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/repository"
)

// AdminService backs the admin console: dashboard stats, user accounts
// and the plan catalogue.
type AdminService struct {
	userRepo    *repository.UserRepository
	planRepo    *repository.PlanRepository
	subRepo     *repository.SubscriptionRepository
	paymentRepo *repository.PaymentRepository
}

func NewAdminService(
	userRepo *repository.UserRepository,
	planRepo *repository.PlanRepository,
	subRepo *repository.SubscriptionRepository,
	paymentRepo *repository.PaymentRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		planRepo:    planRepo,
		subRepo:     subRepo,
		paymentRepo: paymentRepo,
	}
}

// Dashboard aggregates the headline numbers.
func (s *AdminService) Dashboard() (*dto.DashboardStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	activeSubs, err := s.subRepo.CountActive()
	if err != nil {
		return nil, err
	}

	revenue, err := s.paymentRepo.SumCompletedAmount()
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		TotalRevenuePKR:     revenue,
	}, nil
}

// ListUsers returns every account.
func (s *AdminService) ListUsers() ([]*model.User, error) {
	return s.userRepo.List()
}

// UpdateUser edits name, email and the admin flag.
func (s *AdminService) UpdateUser(userID int64, req *dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.IsAdmin = req.IsAdmin
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(userID int64) error {
	if _, err := s.getUser(userID); err != nil {
		return err
	}
	return s.userRepo.Delete(userID)
}

// ResetUserPassword sets a new password on behalf of the user.
func (s *AdminService) ResetUserPassword(userID int64, newPassword string) error {
	user, err := s.getUser(userID)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	passwordStr := string(hashedPassword)
	user.PasswordHash = &passwordStr
	return s.userRepo.Update(user)
}

// ListPlans returns the whole catalogue, inactive plans included.
func (s *AdminService) ListPlans() ([]*model.Plan, error) {
	return s.planRepo.ListAll()
}

// CreatePlan adds a plan to the catalogue.
func (s *AdminService) CreatePlan(req *dto.PlanRequest) (*model.Plan, error) {
	plan := &model.Plan{
		Name:         req.Name,
		PricePKR:     req.PricePKR,
		DurationDays: req.DurationDays,
		MCQLimit:     req.MCQLimit,
		ShortLimit:   req.ShortLimit,
		LongLimit:    req.LongLimit,
		IsActive:     req.IsActive,
	}
	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpdatePlan edits a plan. Existing subscriptions keep their recorded
// window; new limits apply from the next quota evaluation.
func (s *AdminService) UpdatePlan(planID int64, req *dto.PlanRequest) (*model.Plan, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	plan.Name = req.Name
	plan.PricePKR = req.PricePKR
	plan.DurationDays = req.DurationDays
	plan.MCQLimit = req.MCQLimit
	plan.ShortLimit = req.ShortLimit
	plan.LongLimit = req.LongLimit
	plan.IsActive = req.IsActive
	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan from the catalogue.
func (s *AdminService) DeletePlan(planID int64) error {
	if _, err := s.planRepo.GetByID(planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return s.planRepo.Delete(planID)
}

func (s *AdminService) getUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
