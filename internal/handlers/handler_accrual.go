package handlers

import (
	"net/http"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AccrualEnvelope wraps the report of a manual accrual run.
type AccrualEnvelope struct {
	Success bool                 `json:"success"`
	Report  domain.AccrualReport `json:"report"`
}

type accrualHandler struct {
	accrualService portssvc.AccrualSvc
}

func registerAccrualRoutes(rg *gin.RouterGroup, as portssvc.AccrualSvc) {
	h := &accrualHandler{accrualService: as}
	rg.POST("/accrual/run", h.run)
}

// run godoc
// @Summary Run the daily accrual now
// @Description Investments already credited today are skipped, so repeated runs are safe.
// @Tags admin
// @Produce json
// @Success 200 {object} AccrualEnvelope
// @Security BearerAuth
// @Router /admin/accrual/run [post]
func (h *accrualHandler) run(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.accrualService.RunDailyAccrual(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Accrual run failed")
		return
	}
	c.JSON(http.StatusOK, AccrualEnvelope{Success: true, Report: report})
}
