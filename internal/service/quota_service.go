package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/examgen/examgen_go_server/config"
	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/repository"
)

// ErrQuotaExceeded wraps every per-request limit violation.
var ErrQuotaExceeded = errors.New("question limit exceeded")

// QuotaService decides how many questions a request may ask for. Limits
// are per request, not metered: an active paid plan grants its plan
// limits on every call, everyone else gets the built-in free ceiling.
type QuotaService struct {
	subRepo  *repository.SubscriptionRepository
	planRepo *repository.PlanRepository
	cfg      *config.Config
}

func NewQuotaService(subRepo *repository.SubscriptionRepository, planRepo *repository.PlanRepository, cfg *config.Config) *QuotaService {
	return &QuotaService{
		subRepo:  subRepo,
		planRepo: planRepo,
		cfg:      cfg,
	}
}

// Limits is the per-kind ceiling applied to one generate request.
// UnlimitedLimit means no cap for that kind.
type Limits struct {
	MCQ   int
	Short int
	Long  int
}

// LimitsFor resolves the limits governing the user. A subscription past
// its end date no longer counts, without waiting for a background job to
// flip it.
func (s *QuotaService) LimitsFor(userID int64) (Limits, error) {
	sub, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil {
		return Limits{}, err
	}

	if sub == nil || sub.EndDate.Before(time.Now().UTC()) {
		return s.anonymousLimits(), nil
	}

	plan, err := s.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return Limits{}, err
	}

	return Limits{
		MCQ:   plan.MCQLimit,
		Short: plan.ShortLimit,
		Long:  plan.LongLimit,
	}, nil
}

// Evaluate rejects a request that asks for more questions of any kind
// than the user's limits allow.
func (s *QuotaService) Evaluate(userID int64, numMCQs, numShort, numLong int) error {
	limits, err := s.LimitsFor(userID)
	if err != nil {
		return err
	}
	return checkLimits(limits, numMCQs, numShort, numLong)
}

// EvaluateAnonymous applies the built-in free ceiling to requests
// without an account.
func (s *QuotaService) EvaluateAnonymous(numMCQs, numShort, numLong int) error {
	return checkLimits(s.anonymousLimits(), numMCQs, numShort, numLong)
}

// CanExport reports whether the user holds an active paid subscription.
// Export is a paid feature.
func (s *QuotaService) CanExport(userID int64) (bool, error) {
	sub, err := s.subRepo.GetActiveByUserID(userID)
	if err != nil {
		return false, err
	}
	if sub == nil || sub.EndDate.Before(time.Now().UTC()) {
		return false, nil
	}

	plan, err := s.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return false, err
	}

	return plan.PricePKR > 0, nil
}

func (s *QuotaService) anonymousLimits() Limits {
	return Limits{
		MCQ:   s.cfg.Quota.FreeMCQLimit,
		Short: s.cfg.Quota.FreeShortLimit,
		Long:  s.cfg.Quota.FreeLongLimit,
	}
}

func checkLimits(limits Limits, numMCQs, numShort, numLong int) error {
	if exceeds(numMCQs, limits.MCQ) {
		return fmt.Errorf("%w: at most %d MCQs allowed", ErrQuotaExceeded, limits.MCQ)
	}
	if exceeds(numShort, limits.Short) {
		return fmt.Errorf("%w: at most %d short questions allowed", ErrQuotaExceeded, limits.Short)
	}
	if exceeds(numLong, limits.Long) {
		return fmt.Errorf("%w: at most %d long questions allowed", ErrQuotaExceeded, limits.Long)
	}
	return nil
}

func exceeds(requested, limit int) bool {
	if limit == model.UnlimitedLimit {
		return false
	}
	return requested > limit
}
