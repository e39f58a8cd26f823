// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
)

// PaymentHandler handles payment gateway endpoints
type PaymentHandler struct {
	paymentService *payment.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePayPalOrder handles POST /orders/:id/paypal
func (h *PaymentHandler) CreatePayPalOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.InitiatePayPal(c.Request.Context(), orderID)
	if err != nil {
		h.replyPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PayPal order created",
		"data":    resp,
	})
}

// ApprovePayPalOrder handles POST /orders/:id/paypal/capture
func (h *PaymentHandler) ApprovePayPalOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		PayPalOrderID string `json:"paypal_order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "PayPal order ID required",
		})
		return
	}

	o, err := h.paymentService.ApprovePayPal(c.Request.Context(), orderID, req.PayPalOrderID)
	if err != nil {
		h.replyPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your order has been paid",
		"data":    o,
	})
}

// CreateStripeIntent handles POST /orders/:id/stripe
func (h *PaymentHandler) CreateStripeIntent(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.InitiateStripe(c.Request.Context(), orderID)
	if err != nil {
		h.replyPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment intent created",
		"data":    resp,
	})
}

// ConfirmStripeIntent handles POST /orders/:id/stripe/confirm
func (h *PaymentHandler) ConfirmStripeIntent(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment intent ID required",
		})
		return
	}

	o, err := h.paymentService.ConfirmStripe(c.Request.Context(), orderID, req.PaymentIntentID)
	if err != nil {
		h.replyPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Your order has been paid",
		"data":    o,
	})
}

// replyPaymentError maps payment errors to HTTP statuses
func (h *PaymentHandler) replyPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, order.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already paid"})
	case errors.Is(err, payment.ErrWrongPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payment.ErrPaymentVerificationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment could not be verified"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway error"})
	}
}
