package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/examgen/examgen_go_server/internal/pkg/response"
	"github.com/examgen/examgen_go_server/internal/repository"
)

type PlanHandler struct {
	planRepo *repository.PlanRepository
}

func NewPlanHandler(planRepo *repository.PlanRepository) *PlanHandler {
	return &PlanHandler{
		planRepo: planRepo,
	}
}

// List returns the plans currently open for subscription.
// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planRepo.ListActive()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, plans)
}
