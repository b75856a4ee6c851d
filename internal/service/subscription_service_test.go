package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/pkg/userlock"
	"github.com/examgen/examgen_go_server/internal/repository"
	"github.com/examgen/examgen_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewPlanRepository(db),
		nil,
	), db
}

func TestSubscriptionService_Subscribe_FreePlan(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(0), testutil.WithDuration(30))

	item, err := svc.Subscribe(ctx, user.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, item.PlanID)
	assert.Equal(t, model.SubscriptionStatusActive, item.Status)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), item.EndDate, time.Minute)
}

func TestSubscriptionService_Subscribe_PaidPlanNeedsPayment(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(500))

	_, err := svc.Subscribe(context.Background(), user.ID, plan.ID)
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestSubscriptionService_Subscribe_ActiveSubExists(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	current := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, current.ID)

	free := testutil.TestPlan(t, db, testutil.WithPrice(0))

	_, err := svc.Subscribe(context.Background(), user.ID, free.ID)
	assert.ErrorIs(t, err, ErrActiveSubExists)
}

func TestSubscriptionService_Subscribe_NeverTwiceToSamePlan(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	ctx := context.Background()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(0))

	item, err := svc.Subscribe(ctx, user.ID, plan.ID)
	require.NoError(t, err)

	// Cancelling does not clear the history: the same plan can never be
	// subscribed to again
	require.NoError(t, svc.Cancel(user.ID, item.ID))

	_, err = svc.Subscribe(ctx, user.ID, plan.ID)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscriptionService_Subscribe_PlanNotFound(t *testing.T) {
	svc, db := setupSubscriptionService(t)
	user := testutil.TestUser(t, db)

	_, err := svc.Subscribe(context.Background(), user.ID, 99999)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSubscriptionService_Subscribe_LockedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	locker := userlock.NewLocker(client)

	svc := NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewPlanRepository(db),
		locker,
	)

	ctx := context.Background()
	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db, testutil.WithPrice(0))

	// Simulate another in-flight mutation holding the user's lease
	require.NoError(t, locker.Acquire(ctx, user.ID))

	_, err := svc.Subscribe(ctx, user.ID, plan.ID)
	assert.ErrorIs(t, err, userlock.ErrLocked)

	// Once released the subscribe goes through
	require.NoError(t, locker.Release(ctx, user.ID))
	_, err = svc.Subscribe(ctx, user.ID, plan.ID)
	assert.NoError(t, err)
}

func TestSubscriptionService_Cancel(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	sub := testutil.TestSubscription(t, db, user.ID, plan.ID)

	t.Run("owner cancels", func(t *testing.T) {
		require.NoError(t, svc.Cancel(user.ID, sub.ID))

		var stored model.Subscription
		require.NoError(t, db.First(&stored, sub.ID).Error)
		assert.False(t, stored.IsActive)
	})

	t.Run("not the owner", func(t *testing.T) {
		other := testutil.TestUser(t, db)
		err := svc.Cancel(other.ID, sub.ID)
		assert.ErrorIs(t, err, ErrNotSubscriptionOwner)
	})

	t.Run("missing subscription", func(t *testing.T) {
		err := svc.Cancel(user.ID, 99999)
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})
}

func TestSubscriptionService_List_LazyExpiry(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	sub := testutil.TestSubscription(t, db, user.ID, plan.ID, testutil.Expired())

	items, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.SubscriptionStatusExpired, items[0].Status)
	assert.Equal(t, plan.Name, items[0].PlanName)

	// The expiry was persisted on the way out
	var stored model.Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.False(t, stored.IsActive)

	// Later reads still say expired, not cancelled, even though the
	// stored flag is now false
	items, err = svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.SubscriptionStatusExpired, items[0].Status)
}

func TestSubscriptionService_List_Statuses(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	planA := testutil.TestPlan(t, db)
	planB := testutil.TestPlan(t, db)

	testutil.TestSubscription(t, db, user.ID, planA.ID, testutil.Cancelled())
	testutil.TestSubscription(t, db, user.ID, planB.ID)

	items, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	statuses := map[string]bool{}
	for _, item := range items {
		statuses[item.Status] = true
	}
	assert.True(t, statuses[model.SubscriptionStatusActive])
	assert.True(t, statuses[model.SubscriptionStatusCancelled])
}

func TestSubscriptionService_DeleteHistory(t *testing.T) {
	svc, db := setupSubscriptionService(t)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	t.Run("active subscription refuses deletion", func(t *testing.T) {
		sub := testutil.TestSubscription(t, db, user.ID, plan.ID)
		err := svc.DeleteHistory(user.ID, sub.ID)
		assert.ErrorIs(t, err, ErrSubscriptionStillLive)
	})

	t.Run("cancelled subscription deletes", func(t *testing.T) {
		other := testutil.TestPlan(t, db)
		sub := testutil.TestSubscription(t, db, user.ID, other.ID, testutil.Cancelled())

		require.NoError(t, svc.DeleteHistory(user.ID, sub.ID))

		err := db.First(&model.Subscription{}, sub.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
