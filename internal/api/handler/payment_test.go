package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgen/examgen_go_server/internal/model"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/repository"
	"github.com/examgen/examgen_go_server/internal/service"
	"github.com/examgen/examgen_go_server/internal/testutil"
)

func setupPaymentHandler(t *testing.T) (*PaymentHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	paymentService := service.NewPaymentService(
		db,
		repository.NewPaymentRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewPlanRepository(db),
		repository.NewUserRepository(db),
		nil,
		nil,
	)
	handler := NewPaymentHandler(paymentService)

	ctx := &testContext{DB: db}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestPaymentHandler_Submit(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/plans/:id/payments", handler.Submit)

	w := performRequest(router, "POST", fmt.Sprintf("/plans/%d/payments", plan.ID),
		dto.SubmitPaymentRequest{UserNote: "ref 12345"})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pending", data["status"])
	assert.Contains(t, data["transaction_id"], "TXN_")
}

func TestPaymentHandler_Submit_PlanNotFound(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/plans/:id/payments", handler.Submit)

	w := performRequest(router, "POST", "/plans/99999/payments",
		dto.SubmitPaymentRequest{UserNote: "ref 12345"})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestPaymentHandler_Submit_FreePlan(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	free := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(0))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/plans/:id/payments", handler.Submit)

	w := performRequest(router, "POST", fmt.Sprintf("/plans/%d/payments", free.ID),
		dto.SubmitPaymentRequest{UserNote: "ref 12345"})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeWorkflowError, resp.Code)
}

func TestPaymentHandler_Submit_AlreadySubscribed(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	testutil.TestSubscription(t, ctx.DB, user.ID, plan.ID, testutil.Cancelled())

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/plans/:id/payments", handler.Submit)

	w := performRequest(router, "POST", fmt.Sprintf("/plans/%d/payments", plan.ID),
		dto.SubmitPaymentRequest{UserNote: "ref 12345"})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeDuplicateAction, resp.Code)
}

func TestPaymentHandler_Cancel_Pending(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	payment := testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/payments/:id/cancel", handler.Cancel)

	w := performRequest(router, "POST", fmt.Sprintf("/payments/%d/cancel", payment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestPaymentHandler_Cancel_NotPending(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	payment := testutil.TestPayment(t, ctx.DB, user.ID, plan.ID,
		testutil.WithPaymentStatus(model.PaymentStatusRejected))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/payments/:id/cancel", handler.Cancel)

	w := performRequest(router, "POST", fmt.Sprintf("/payments/%d/cancel", payment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeWorkflowError, resp.Code)
}

func TestPaymentHandler_Approve(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	payment := testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)

	router := gin.New()
	router.POST("/admin/payments/:id/approve", handler.Approve)

	w := performRequest(router, "POST", fmt.Sprintf("/admin/payments/%d/approve", payment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// The paid subscription is now active
	var sub model.Subscription
	err := ctx.DB.Where("user_id = ? AND is_active = ?", user.ID, true).First(&sub).Error
	require.NoError(t, err)
	assert.Equal(t, plan.ID, sub.PlanID)
}

func TestPaymentHandler_Approve_Twice(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	payment := testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)

	router := gin.New()
	router.POST("/admin/payments/:id/approve", handler.Approve)

	w := performRequest(router, "POST", fmt.Sprintf("/admin/payments/%d/approve", payment.ID), nil)
	require.Equal(t, response.CodeSuccess, parseResponse(t, w).Code)

	w = performRequest(router, "POST", fmt.Sprintf("/admin/payments/%d/approve", payment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeWorkflowError, resp.Code)
}

func TestPaymentHandler_Reject(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	payment := testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)

	router := gin.New()
	router.POST("/admin/payments/:id/reject", handler.Reject)

	w := performRequest(router, "POST", fmt.Sprintf("/admin/payments/%d/reject", payment.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// No subscription is created on rejection
	var count int64
	ctx.DB.Model(&model.Subscription{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPaymentHandler_List(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)
	testutil.TestPayment(t, ctx.DB, user.ID, plan.ID,
		testutil.WithPaymentStatus(model.PaymentStatusCancelled))

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/payments", handler.List)

	w := performRequest(router, "GET", "/payments", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestPaymentHandler_Latest_None(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/payments/latest", handler.Latest)

	w := performRequest(router, "GET", "/payments/latest", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestPaymentHandler_ListAll_FilterByStatus(t *testing.T) {
	handler, ctx, cleanup := setupPaymentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB, testutil.WithPrice(500))
	testutil.TestPayment(t, ctx.DB, user.ID, plan.ID)
	testutil.TestPayment(t, ctx.DB, user.ID, plan.ID,
		testutil.WithPaymentStatus(model.PaymentStatusCompleted))

	router := gin.New()
	router.GET("/admin/payments", handler.ListAll)

	w := performRequest(router, "GET", "/admin/payments?status=completed", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}
