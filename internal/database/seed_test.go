package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/testutil"
)

func TestSeedPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	require.NoError(t, SeedPlans(db))

	var plans []model.Plan
	require.NoError(t, db.Order("id").Find(&plans).Error)

	// 4 monthly defaults plus yearly variants for the 3 paid plans
	require.Len(t, plans, 7)

	byName := make(map[string]model.Plan)
	for _, p := range plans {
		byName[p.Name] = p
	}

	free := byName["Free"]
	assert.Equal(t, 0, free.PricePKR)
	assert.Equal(t, 30, free.DurationDays)
	assert.Equal(t, 10, free.MCQLimit)
	assert.Equal(t, 5, free.ShortLimit)
	assert.Equal(t, 2, free.LongLimit)

	enterprise := byName["Enterprise"]
	assert.True(t, enterprise.Unlimited())

	// Yearly plans cost ten monthly prices and run 365 days
	basicYearly, ok := byName["Basic Yearly"]
	require.True(t, ok)
	assert.Equal(t, 5000, basicYearly.PricePKR)
	assert.Equal(t, 365, basicYearly.DurationDays)
	assert.Equal(t, 50, basicYearly.MCQLimit)

	proYearly, ok := byName["Pro Yearly"]
	require.True(t, ok)
	assert.Equal(t, 10000, proYearly.PricePKR)

	enterpriseYearly, ok := byName["Enterprise Yearly"]
	require.True(t, ok)
	assert.True(t, enterpriseYearly.Unlimited())

	// No yearly variant for the free plan
	_, ok = byName["Free Yearly"]
	assert.False(t, ok)
}

func TestSeedPlans_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	require.NoError(t, SeedPlans(db))
	require.NoError(t, SeedPlans(db))

	var count int64
	require.NoError(t, db.Model(&model.Plan{}).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}

func TestSeedPlans_KeepsExistingCatalogue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	custom := testutil.TestPlan(t, db, testutil.WithPrice(750))
	require.NoError(t, SeedPlans(db))

	// Existing catalogue is left alone, only yearly variants are added
	var names []string
	require.NoError(t, db.Model(&model.Plan{}).Order("id").Pluck("name", &names).Error)
	assert.Contains(t, names, custom.Name)
	assert.Contains(t, names, custom.Name+" Yearly")
}
