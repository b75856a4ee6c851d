package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/repository"
	"github.com/examgen/examgen_go_server/internal/testutil"
)

func setupComplaintService(t *testing.T) (*ComplaintService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewComplaintService(
		repository.NewComplaintRepository(db),
		repository.NewUserRepository(db),
	), db
}

func TestComplaintService_SubmitAndList(t *testing.T) {
	svc, db := setupComplaintService(t)
	user := testutil.TestUser(t, db)

	complaint, err := svc.Submit(user.ID, "my export link never loads")
	require.NoError(t, err)
	assert.Equal(t, model.ComplaintStatusPending, complaint.Status)
	assert.Empty(t, complaint.AdminResponse)

	list, err := svc.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "my export link never loads", list[0].Content)
}

func TestComplaintService_Delete(t *testing.T) {
	svc, db := setupComplaintService(t)

	user := testutil.TestUser(t, db)
	complaint := testutil.TestComplaint(t, db, user.ID, "wrong answers in generated MCQs")

	t.Run("not the owner", func(t *testing.T) {
		other := testutil.TestUser(t, db)
		err := svc.Delete(other.ID, complaint.ID)
		assert.ErrorIs(t, err, ErrNotComplaintOwner)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(user.ID, complaint.ID))

		err := db.First(&model.Complaint{}, complaint.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("missing complaint", func(t *testing.T) {
		err := svc.Delete(user.ID, 99999)
		assert.ErrorIs(t, err, ErrComplaintNotFound)
	})
}

func TestComplaintService_AdminFlow(t *testing.T) {
	svc, db := setupComplaintService(t)

	user := testutil.TestUser(t, db, testutil.WithName("Hira"), testutil.WithEmail("hira@example.com"))
	complaint := testutil.TestComplaint(t, db, user.ID, "payment approved but plan not active")

	t.Run("list all includes author", func(t *testing.T) {
		items, err := svc.ListAll()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Hira", items[0].UserName)
		assert.Equal(t, "hira@example.com", items[0].UserEmail)
	})

	t.Run("respond", func(t *testing.T) {
		require.NoError(t, svc.Respond(complaint.ID, "plan re-activated, sorry for the trouble"))

		var stored model.Complaint
		require.NoError(t, db.First(&stored, complaint.ID).Error)
		assert.Equal(t, "plan re-activated, sorry for the trouble", stored.AdminResponse)
		// Responding alone does not resolve
		assert.Equal(t, model.ComplaintStatusPending, stored.Status)
	})

	t.Run("resolve", func(t *testing.T) {
		require.NoError(t, svc.Resolve(complaint.ID))

		var stored model.Complaint
		require.NoError(t, db.First(&stored, complaint.ID).Error)
		assert.Equal(t, model.ComplaintStatusResolved, stored.Status)
	})
}
