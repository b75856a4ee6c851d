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

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Subscribe enrolls the user in a plan. Free plans activate at once;
// paid plans are refused here and go through the payment flow instead.
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.subscriptionService.Subscribe(c.Request.Context(), userID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrActiveSubExists):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrAlreadySubscribed):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrPaymentRequired):
			response.WorkflowError(c, err.Error())
		case errors.Is(err, userlock.ErrLocked):
			response.WorkflowError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "subscribed", item)
}

// List returns the user's subscription history, newest first.
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.subscriptionService.List(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// Cancel deactivates one of the user's subscriptions.
// POST /api/v1/subscriptions/:id/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid subscription ID")
		return
	}

	if err := h.subscriptionService.Cancel(userID, subID); err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotSubscriptionOwner):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "subscription cancelled", nil)
}

// DeleteHistory removes an expired or cancelled subscription record.
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) DeleteHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	subID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid subscription ID")
		return
	}

	if err := h.subscriptionService.DeleteHistory(userID, subID); err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrNotSubscriptionOwner):
			response.PermissionError(c, err.Error())
		case errors.Is(err, service.ErrSubscriptionStillLive):
			response.WorkflowError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "subscription record deleted", nil)
}
