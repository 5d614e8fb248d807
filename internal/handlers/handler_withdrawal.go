package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WithdrawalRequestedResponse echoes the snapshot taken for the request.
type WithdrawalRequestedResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Amount      decimal.Decimal `json:"amount"`
	RequestedAt *time.Time      `json:"requestedAt"`
}

// WithdrawalsEnvelope wraps the admin withdrawal listing.
type WithdrawalsEnvelope struct {
	Success  bool                     `json:"success"`
	Requests []dto.WithdrawalResponse `json:"requests"`
}

type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func registerPublicWithdrawalRoutes(rg *gin.RouterGroup, h *withdrawalHandler) {
	rg.POST("/withdrawals", h.requestWithdrawal)
}

func registerAdminWithdrawalRoutes(rg *gin.RouterGroup, h *withdrawalHandler) {
	rg.GET("/withdrawals", h.listWithdrawals)
	rg.POST("/withdrawals/:accountID", h.resolveWithdrawal)
}

// requestWithdrawal godoc
// @Summary Request a withdrawal
// @Description Requests payout of the whole balance to a UPI ID or bank account.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body dto.WithdrawalRequestBody true "Payout destination"
// @Success 201 {object} WithdrawalRequestedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A withdrawal is already pending"
// @Failure 422 {object} ErrorResponse "Balance below the minimum"
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	request, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), domain.ByNationalID(req.NationalID), req.Destination())
	if err != nil {
		respondError(c, logger, err, "Failed to request withdrawal")
		return
	}
	c.JSON(http.StatusCreated, WithdrawalRequestedResponse{
		Success:     true,
		Message:     "Withdrawal requested",
		Amount:      request.Amount,
		RequestedAt: request.RequestedAt,
	})
}

// listWithdrawals godoc
// @Summary List withdrawal requests
// @Tags admin
// @Produce json
// @Success 200 {object} WithdrawalsEnvelope
// @Security BearerAuth
// @Router /admin/withdrawals [get]
func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	views, err := h.withdrawalService.ListWithdrawalRequests(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list withdrawals")
		return
	}
	c.JSON(http.StatusOK, WithdrawalsEnvelope{Success: true, Requests: dto.ToWithdrawalResponses(views)})
}

// resolveWithdrawal godoc
// @Summary Resolve a withdrawal
// @Description Approves (pays out and zeroes the balance) or rejects the pending request.
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param decision body dto.ResolveWithdrawalBody true "Approved or Rejected"
// @Success 200 {object} AccountEnvelope
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/withdrawals/{accountID} [post]
func (h *withdrawalHandler) resolveWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	var req dto.ResolveWithdrawalBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	account, err := h.withdrawalService.ResolveWithdrawal(c.Request.Context(), domain.ByAccountID(accountID), req.Status)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve withdrawal")
		return
	}
	logger.Info("Withdrawal resolved", slog.String("account_id", accountID), slog.String("status", req.Status))
	c.JSON(http.StatusOK, AccountEnvelope{Success: true, User: dto.ToAccountResponse(account)})
}
