package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/internal/api/middleware"
	"github.com/examgen/examgen_go_server/internal/model/dto"
	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/service"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// Submit files a new complaint.
// POST /api/v1/complaints
func (h *ComplaintHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	complaint, err := h.complaintService.Submit(userID, req.Content)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "complaint submitted", complaint)
}

// List returns the user's own complaints.
// GET /api/v1/complaints
func (h *ComplaintHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	complaints, err := h.complaintService.ListByUser(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, complaints)
}

// Delete removes one of the user's complaints.
// DELETE /api/v1/complaints/:id
func (h *ComplaintHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	complaintID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid complaint ID")
		return
	}

	if err := h.complaintService.Delete(userID, complaintID); err != nil {
		h.respondComplaintError(c, err)
		return
	}

	response.SuccessWithMessage(c, "complaint deleted", nil)
}

// ListAll returns every complaint with its author attached.
// GET /api/v1/admin/complaints
func (h *ComplaintHandler) ListAll(c *gin.Context) {
	complaints, err := h.complaintService.ListAll()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, complaints)
}

// Respond records an admin reply on a complaint.
// POST /api/v1/admin/complaints/:id/respond
func (h *ComplaintHandler) Respond(c *gin.Context) {
	complaintID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid complaint ID")
		return
	}

	var req dto.RespondComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.complaintService.Respond(complaintID, req.AdminResponse); err != nil {
		h.respondComplaintError(c, err)
		return
	}

	response.SuccessWithMessage(c, "response recorded", nil)
}

// Resolve marks a complaint as resolved.
// POST /api/v1/admin/complaints/:id/resolve
func (h *ComplaintHandler) Resolve(c *gin.Context) {
	complaintID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid complaint ID")
		return
	}

	if err := h.complaintService.Resolve(complaintID); err != nil {
		h.respondComplaintError(c, err)
		return
	}

	response.SuccessWithMessage(c, "complaint resolved", nil)
}

func (h *ComplaintHandler) respondComplaintError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrComplaintNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrNotComplaintOwner):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
