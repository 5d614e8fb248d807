package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/dto"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc) {
	h := &paymentHandler{paymentService: paymentService}
	rg.POST("/orders", h.createOrder)
}

// createOrder godoc
// @Summary Create a checkout order
// @Description Creates a payment gateway order for the given amount in major units.
// @Tags payments
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order amount"
// @Success 200 {object} dto.CreateOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders [post]
func (h *paymentHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Checkout order created", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusOK, dto.CreateOrderResponse{Success: true, OrderID: order.OrderID, Amount: order.GatewayAmount})
}
