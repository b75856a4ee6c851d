package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/config"
	"github.com/examgen/examgen_go_server/internal/repository"
	"github.com/examgen/examgen_go_server/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpireHours: 24,
		},
		Quota: config.QuotaConfig{
			FreeMCQLimit:   5,
			FreeShortLimit: 3,
			FreeLongLimit:  1,
		},
	}
}

func setupQuotaService(t *testing.T) (*QuotaService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	return NewQuotaService(subRepo, planRepo, testConfig()), db
}

func TestQuotaService_EvaluateAnonymous(t *testing.T) {
	svc, _ := setupQuotaService(t)

	t.Run("within free ceiling", func(t *testing.T) {
		assert.NoError(t, svc.EvaluateAnonymous(5, 3, 1))
	})

	t.Run("mcq over ceiling", func(t *testing.T) {
		err := svc.EvaluateAnonymous(6, 0, 0)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("short over ceiling", func(t *testing.T) {
		err := svc.EvaluateAnonymous(0, 4, 0)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("long over ceiling", func(t *testing.T) {
		err := svc.EvaluateAnonymous(0, 0, 2)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
	})

	t.Run("zero request", func(t *testing.T) {
		assert.NoError(t, svc.EvaluateAnonymous(0, 0, 0))
	})
}

func TestQuotaService_Evaluate_NoSubscription(t *testing.T) {
	svc, db := setupQuotaService(t)
	user := testutil.TestUser(t, db)

	// Unsubscribed users are held to the free ceiling
	assert.NoError(t, svc.Evaluate(user.ID, 5, 3, 1))
	assert.ErrorIs(t, svc.Evaluate(user.ID, 6, 0, 0), ErrQuotaExceeded)
}

func TestQuotaService_Evaluate_ActivePlan(t *testing.T) {
	svc, db := setupQuotaService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(50, 25, 10))
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	assert.NoError(t, svc.Evaluate(user.ID, 50, 25, 10))
	assert.ErrorIs(t, svc.Evaluate(user.ID, 51, 0, 0), ErrQuotaExceeded)
	assert.ErrorIs(t, svc.Evaluate(user.ID, 0, 26, 0), ErrQuotaExceeded)
	assert.ErrorIs(t, svc.Evaluate(user.ID, 0, 0, 11), ErrQuotaExceeded)
}

func TestQuotaService_Evaluate_UnlimitedPlan(t *testing.T) {
	svc, db := setupQuotaService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(-1, -1, -1))
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	assert.NoError(t, svc.Evaluate(user.ID, 1000, 500, 250))
}

func TestQuotaService_Evaluate_ExpiredSubscription(t *testing.T) {
	svc, db := setupQuotaService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(50, 25, 10))
	testutil.TestSubscription(t, db, user.ID, plan.ID, testutil.Expired())

	// Past its end date the subscription no longer grants plan limits,
	// even while is_active has not been flipped yet
	assert.ErrorIs(t, svc.Evaluate(user.ID, 6, 0, 0), ErrQuotaExceeded)
	assert.NoError(t, svc.Evaluate(user.ID, 5, 3, 1))
}

func TestQuotaService_Evaluate_CancelledSubscription(t *testing.T) {
	svc, db := setupQuotaService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(50, 25, 10))
	testutil.TestSubscription(t, db, user.ID, plan.ID, testutil.Cancelled())

	assert.ErrorIs(t, svc.Evaluate(user.ID, 6, 0, 0), ErrQuotaExceeded)
}

func TestQuotaService_LimitsFor(t *testing.T) {
	svc, db := setupQuotaService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithLimits(100, 50, 25))
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	limits, err := svc.LimitsFor(user.ID)
	require.NoError(t, err)
	assert.Equal(t, Limits{MCQ: 100, Short: 50, Long: 25}, limits)
}

func TestQuotaService_CanExport(t *testing.T) {
	t.Run("no subscription", func(t *testing.T) {
		svc, db := setupQuotaService(t)
		user := testutil.TestUser(t, db)

		ok, err := svc.CanExport(user.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("active paid plan", func(t *testing.T) {
		svc, db := setupQuotaService(t)
		user := testutil.TestUser(t, db)
		plan := testutil.TestPlan(t, db, testutil.WithPrice(500))
		testutil.TestSubscription(t, db, user.ID, plan.ID)

		ok, err := svc.CanExport(user.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("active free plan", func(t *testing.T) {
		svc, db := setupQuotaService(t)
		user := testutil.TestUser(t, db)
		plan := testutil.TestPlan(t, db, testutil.WithPrice(0))
		testutil.TestSubscription(t, db, user.ID, plan.ID)

		ok, err := svc.CanExport(user.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired paid plan", func(t *testing.T) {
		svc, db := setupQuotaService(t)
		user := testutil.TestUser(t, db)
		plan := testutil.TestPlan(t, db, testutil.WithPrice(500))
		testutil.TestSubscription(t, db, user.ID, plan.ID, testutil.Expired())

		ok, err := svc.CanExport(user.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
