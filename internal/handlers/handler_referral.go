package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// AccountsEnvelope wraps a list of accounts.
type AccountsEnvelope struct {
	Success bool                  `json:"success"`
	Users   []dto.AccountResponse `json:"users"`
}

type referralHandler struct {
	referralService portssvc.ReferralSvcFacade
}

func registerReferralRoutes(rg *gin.RouterGroup, rs portssvc.ReferralSvcFacade) {
	h := &referralHandler{referralService: rs}
	referrals := rg.Group("/referrals")
	{
		referrals.GET("", h.listPending)
		referrals.POST("/:accountID/approve", h.approve)
		referrals.POST("/:accountID/reject", h.reject)
	}
}

// listPending godoc
// @Summary List pending referrals
// @Tags admin
// @Produce json
// @Success 200 {object} AccountsEnvelope
// @Security BearerAuth
// @Router /admin/referrals [get]
func (h *referralHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.referralService.ListPendingReferrals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list referrals")
		return
	}
	res := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, AccountsEnvelope{Success: true, Users: res})
}

// approve godoc
// @Summary Approve a referral
// @Description Credits the referral bonus to the referrer and marks the referee approved.
// @Tags admin
// @Produce json
// @Param accountID path string true "Referee account ID"
// @Success 200 {object} AccountEnvelope
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Referral already decided"
// @Security BearerAuth
// @Router /admin/referrals/{accountID}/approve [post]
func (h *referralHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.referralService.ApproveReferral(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to approve referral")
		return
	}
	c.JSON(http.StatusOK, AccountEnvelope{Success: true, User: dto.ToAccountResponse(account)})
}

// reject godoc
// @Summary Reject a referral
// @Tags admin
// @Produce json
// @Param accountID path string true "Referee account ID"
// @Success 200 {object} AccountEnvelope
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/referrals/{accountID}/reject [post]
func (h *referralHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.referralService.RejectReferral(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to reject referral")
		return
	}
	c.JSON(http.StatusOK, AccountEnvelope{Success: true, User: dto.ToAccountResponse(account)})
}
