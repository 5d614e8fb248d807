package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/core/domain"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InvestmentSubmittedResponse is returned after a successful submission.
type InvestmentSubmittedResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccountID    string `json:"accountID"`
	ReferralCode string `json:"referralCode"`
}

// AccountEnvelope wraps a single account.
type AccountEnvelope struct {
	Success bool                `json:"success"`
	User    dto.AccountResponse `json:"user"`
}

// InvestmentsEnvelope wraps an admin investment listing.
type InvestmentsEnvelope struct {
	Success bool                             `json:"success"`
	Users   []dto.AccountInvestmentsResponse `json:"users"`
}

type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
	storage           gateways.DocumentStorage
	maxUploadBytes    int64
}

func newInvestmentHandler(is portssvc.InvestmentSvcFacade, storage gateways.DocumentStorage, maxUploadBytes int64) *investmentHandler {
	return &investmentHandler{
		investmentService: is,
		storage:           storage,
		maxUploadBytes:    maxUploadBytes,
	}
}

// registerPublicInvestmentRoutes registers the customer-facing investment routes.
func registerPublicInvestmentRoutes(rg *gin.RouterGroup, h *investmentHandler) {
	rg.POST("/investments", h.submitInvestment)
	rg.POST("/accounts/lookup", h.lookupAccount)
}

// registerAdminInvestmentRoutes registers the operator investment routes.
func registerAdminInvestmentRoutes(rg *gin.RouterGroup, h *investmentHandler) {
	rg.GET("/investments", h.listInvestments)
	rg.GET("/investments/recent", h.listRecentInvestments)
	rg.GET("/plans/:plan/investments", h.listInvestmentsByPlan)
	rg.POST("/accounts/:accountID/investments/:index", h.setInvestmentState)
}

// readProof reads one uploaded proof document, bounded by maxUploadBytes.
func (h *investmentHandler) readProof(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fh.Filename, h.maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > h.maxUploadBytes {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fh.Filename, h.maxUploadBytes)
	}
	return content, nil
}

// submitInvestment godoc
// @Summary Submit an investment
// @Description Uploads both identity proof documents, verifies the payment confirmation and records the investment.
// @Tags investments
// @Accept multipart/form-data
// @Produce json
// @Param aadhaar formData string true "National ID"
// @Param name formData string false "Name"
// @Param email formData string false "Email"
// @Param phone formData string false "Phone"
// @Param plan formData string true "Plan name"
// @Param amount formData string true "Principal"
// @Param referral formData string false "Referral code"
// @Param razorpay_order_id formData string false "Gateway order ID"
// @Param razorpay_payment_id formData string false "Gateway payment ID"
// @Param razorpay_signature formData string false "Gateway signature"
// @Param front formData file true "Front of identity document"
// @Param back formData file true "Back of identity document"
// @Success 201 {object} InvestmentSubmittedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Payment confirmation could not be verified"
// @Failure 502 {object} ErrorResponse "Document upload failed"
// @Failure 503 {object} ErrorResponse
// @Router /investments [post]
func (h *investmentHandler) submitInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxUploadBytes+(1<<20))

	var form dto.InvestmentForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, logger, "Invalid form", err)
		return
	}
	amount, err := decimal.NewFromString(form.Amount)
	if err != nil {
		badRequest(c, logger, "Invalid amount", err)
		return
	}

	front, err := c.FormFile("front")
	if err != nil {
		badRequest(c, logger, "Front document is required", nil)
		return
	}
	back, err := c.FormFile("back")
	if err != nil {
		badRequest(c, logger, "Back document is required", nil)
		return
	}

	req := dto.SubmitInvestmentRequest{
		NationalID:   form.NationalID,
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Plan:         form.Plan,
		Amount:       amount,
		ReferralCode: form.Referral,
		Payment:      form.Confirmation(),
	}
	if err := h.investmentService.PrecheckSubmission(c.Request.Context(), req); err != nil {
		respondError(c, logger, err, "Investment rejected")
		return
	}

	refs := make([]string, 0, 2)
	for _, part := range []struct {
		header *multipart.FileHeader
		folder string
	}{{front, "aadhaar-front"}, {back, "aadhaar-back"}} {
		content, err := h.readProof(part.header)
		if err != nil {
			badRequest(c, logger, "Invalid document", err)
			return
		}
		ref, err := h.storage.Upload(c.Request.Context(), content, part.header.Filename, part.folder)
		if err != nil {
			respondError(c, logger, err, "Failed to upload document")
			return
		}
		refs = append(refs, ref)
	}

	req.FrontProofRef = refs[0]
	req.BackProofRef = refs[1]
	account, err := h.investmentService.SubmitInvestment(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record investment")
		return
	}

	logger.Info("Investment submitted", slog.String("account_id", account.AccountID), slog.String("plan", req.Plan))
	c.JSON(http.StatusCreated, InvestmentSubmittedResponse{
		Success:      true,
		Message:      "Investment recorded",
		AccountID:    account.AccountID,
		ReferralCode: account.ReferralCode,
	})
}

// lookupAccount godoc
// @Summary Look up an account
// @Description Returns the account registered under a national ID.
// @Tags accounts
// @Accept json
// @Produce json
// @Param lookup body dto.LookupAccountRequest true "National ID"
// @Success 200 {object} AccountEnvelope
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/lookup [post]
func (h *investmentHandler) lookupAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LookupAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	account, err := h.investmentService.GetAccount(c.Request.Context(), domain.ByNationalID(req.NationalID))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, AccountEnvelope{Success: true, User: dto.ToAccountResponse(account)})
}

// listInvestments godoc
// @Summary List all investments
// @Tags admin
// @Produce json
// @Success 200 {object} InvestmentsEnvelope
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/investments [get]
func (h *investmentHandler) listInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groups, err := h.investmentService.ListInvestments(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list investments")
		return
	}
	c.JSON(http.StatusOK, InvestmentsEnvelope{Success: true, Users: dto.ToAccountInvestmentsResponses(groups)})
}

// listRecentInvestments godoc
// @Summary List recent investments
// @Description Investments created within the window (default 24h).
// @Tags admin
// @Produce json
// @Param window query string false "Go duration, e.g. 48h"
// @Success 200 {object} InvestmentsEnvelope
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/investments/recent [get]
func (h *investmentHandler) listRecentInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			badRequest(c, logger, "Invalid window", err)
			return
		}
		window = d
	}
	groups, err := h.investmentService.ListRecentInvestments(c.Request.Context(), window)
	if err != nil {
		respondError(c, logger, err, "Failed to list recent investments")
		return
	}
	c.JSON(http.StatusOK, InvestmentsEnvelope{Success: true, Users: dto.ToAccountInvestmentsResponses(groups)})
}

// listInvestmentsByPlan godoc
// @Summary List investments of one plan
// @Tags admin
// @Produce json
// @Param plan path string true "Plan name"
// @Success 200 {object} InvestmentsEnvelope
// @Security BearerAuth
// @Router /admin/plans/{plan}/investments [get]
func (h *investmentHandler) listInvestmentsByPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	plan := c.Param("plan")
	groups, err := h.investmentService.ListInvestmentsByPlan(c.Request.Context(), plan)
	if err != nil {
		respondError(c, logger, err, "Failed to list investments")
		return
	}
	c.JSON(http.StatusOK, InvestmentsEnvelope{Success: true, Users: dto.ToAccountInvestmentsResponses(groups)})
}

// setInvestmentState godoc
// @Summary Override an investment
// @Description Sets status, profit or lock flag of the investment at index.
// @Tags admin
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param index path int true "Investment index"
// @Param update body dto.UpdateInvestmentRequest true "Fields to change"
// @Success 200 {object} AccountEnvelope
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/accounts/{accountID}/investments/{index} [post]
func (h *investmentHandler) setInvestmentState(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, logger, "Invalid investment index", err)
		return
	}
	var req dto.UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	account, err := h.investmentService.AdminSetInvestmentState(c.Request.Context(), domain.ByAccountID(accountID), index, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update investment")
		return
	}
	logger.Info("Investment overridden", slog.String("account_id", accountID), slog.Int("index", index))
	c.JSON(http.StatusOK, AccountEnvelope{Success: true, User: dto.ToAccountResponse(account)})
}
