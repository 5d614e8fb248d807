package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// PlansEnvelope wraps the plan catalog.
type PlansEnvelope struct {
	Success bool          `json:"success"`
	Plans   []domain.Plan `json:"plans"`
}

// PlanEnvelope wraps a single plan.
type PlanEnvelope struct {
	Success bool        `json:"success"`
	Plan    domain.Plan `json:"plan"`
}

type planHandler struct {
	planService portssvc.PlanSvcFacade
}

func registerPlanRoutes(rg *gin.RouterGroup, ps portssvc.PlanSvcFacade) {
	h := &planHandler{planService: ps}
	rg.GET("/plans", h.listPlans)
	rg.PUT("/plans", h.upsertPlan)
}

// listPlans godoc
// @Summary List plans
// @Tags admin
// @Produce json
// @Success 200 {object} PlansEnvelope
// @Security BearerAuth
// @Router /admin/plans [get]
func (h *planHandler) listPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, PlansEnvelope{Success: true, Plans: plans})
}

// upsertPlan godoc
// @Summary Create or update a plan
// @Tags admin
// @Accept json
// @Produce json
// @Param plan body dto.UpsertPlanRequest true "Plan"
// @Success 200 {object} PlanEnvelope
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/plans [put]
func (h *planHandler) upsertPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}
	plan, err := h.planService.UpsertPlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to save plan")
		return
	}
	logger.Info("Plan saved", slog.String("plan", plan.Name), slog.String("daily_profit_percent", plan.DailyProfitPercent.String()))
	c.JSON(http.StatusOK, PlanEnvelope{Success: true, Plan: *plan})
}
