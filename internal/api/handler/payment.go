package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/internal/api/middleware"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/pkg/userlock"
	"github.com/examgen/examgen_go_server/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Submit records a manual payment for a paid plan. The payment stays
// pending until an admin approves it.
// POST /api/v1/plans/:id/payments
func (h *PaymentHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid plan ID")
		return
	}

	var req dto.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.paymentService.Submit(userID, planID, req.UserNote)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanNotPaid):
			response.WorkflowError(c, err.Error())
		case errors.Is(err, service.ErrAlreadySubscribed):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "payment submitted for review", item)
}

// List returns the user's payment history, newest first.
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.paymentService.ListByUser(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Latest returns the user's most recent payment, or null when there is
// none.
// GET /api/v1/payments/latest
func (h *PaymentHandler) Latest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	item, err := h.paymentService.Latest(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, item)
}

// Cancel withdraws one of the user's pending payments.
// POST /api/v1/payments/:id/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment ID")
		return
	}

	if err := h.paymentService.Cancel(userID, paymentID); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	response.SuccessWithMessage(c, "payment cancelled", nil)
}

// DeleteHistory removes a settled payment record from the user's
// history.
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) DeleteHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment ID")
		return
	}

	if err := h.paymentService.DeleteHistory(userID, paymentID); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	response.SuccessWithMessage(c, "payment record deleted", nil)
}

// ListAll returns every payment, optionally filtered by payer email,
// plan or status.
// GET /api/v1/admin/payments
func (h *PaymentHandler) ListAll(c *gin.Context) {
	var filter dto.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	items, err := h.paymentService.ListAll(&filter)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Approve completes a pending payment and activates the paid
// subscription.
// POST /api/v1/admin/payments/:id/approve
func (h *PaymentHandler) Approve(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment ID")
		return
	}

	if err := h.paymentService.Approve(c.Request.Context(), paymentID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPaymentNotPending):
			response.WorkflowError(c, err.Error())
		case errors.Is(err, userlock.ErrLocked):
			response.WorkflowError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "payment approved", nil)
}

// Reject turns down a pending payment. No subscription is created.
// POST /api/v1/admin/payments/:id/reject
func (h *PaymentHandler) Reject(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment ID")
		return
	}

	if err := h.paymentService.Reject(paymentID); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	response.SuccessWithMessage(c, "payment rejected", nil)
}

// Delete removes any payment record.
// DELETE /api/v1/admin/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid payment ID")
		return
	}

	if err := h.paymentService.Delete(paymentID); err != nil {
		h.respondPaymentError(c, err)
		return
	}

	response.SuccessWithMessage(c, "payment record deleted", nil)
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNotPaymentOwner):
		response.PermissionError(c, err.Error())
	case errors.Is(err, service.ErrPaymentNotPending):
		response.WorkflowError(c, err.Error())
	case errors.Is(err, service.ErrPaymentStillPending):
		response.WorkflowError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
