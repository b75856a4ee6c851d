package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Dashboard returns headline counts for the admin overview.
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// ListUsers returns every registered account.
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, users)
}

// UpdateUser edits an account's name, email or admin flag.
// PUT /api/v1/admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	user, err := h.adminService.UpdateUser(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "user updated", user)
}

// DeleteUser removes an account.
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid user ID")
		return
	}

	if err := h.adminService.DeleteUser(userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "user deleted", nil)
}

// ResetUserPassword sets a new password on behalf of a user.
// POST /api/v1/admin/users/:id/reset-password
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid user ID")
		return
	}

	var req dto.AdminResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.adminService.ResetUserPassword(userID, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "password reset", nil)
}

// ListPlans returns the full plan catalogue, inactive plans included.
// GET /api/v1/admin/plans
func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.adminService.ListPlans()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, plans)
}

// CreatePlan adds a plan to the catalogue.
// POST /api/v1/admin/plans
func (h *AdminHandler) CreatePlan(c *gin.Context) {
	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.adminService.CreatePlan(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "plan created", plan)
}

// UpdatePlan edits a plan.
// PUT /api/v1/admin/plans/:id
func (h *AdminHandler) UpdatePlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid plan ID")
		return
	}

	var req dto.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.adminService.UpdatePlan(planID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "plan updated", plan)
}

// DeletePlan removes a plan from the catalogue.
// DELETE /api/v1/admin/plans/:id
func (h *AdminHandler) DeletePlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid plan ID")
		return
	}

	if err := h.adminService.DeletePlan(planID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "plan deleted", nil)
}
