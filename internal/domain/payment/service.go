// internal/domain/payment/service.go
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Gateway success sentinels. A capture that does not report one of
// these never settles the order.
const (
	paypalCompletedStatus = "COMPLETED"
	stripeSucceededStatus = "succeeded"
)

var (
	// ErrPaymentVerificationFailed is returned when the gateway capture
	// does not match the transaction recorded against the order.
	ErrPaymentVerificationFailed = errors.New("payment verification failed")

	// ErrWrongPaymentMethod is returned when a gateway endpoint is
	// invoked for an order placed with a different payment method.
	ErrWrongPaymentMethod = errors.New("order uses a different payment method")
)

// Service coordinates the payment gateways with order settlement.
type Service struct {
	config       *config.Config
	orderService *order.Service
	paypal       *PayPalClient
	stripe       *StripeClient
}

// NewService creates a new payment service
func NewService(cfg *config.Config, orderService *order.Service) *Service {
	return &Service{
		config:       cfg,
		orderService: orderService,
		paypal:       NewPayPalClient(cfg),
		stripe:       NewStripeClient(cfg),
	}
}

// InitiationResponse carries what the client needs to drive the
// gateway's approval flow.
type InitiationResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
}

// InitiatePayPal opens a PayPal order for an unpaid order and records
// the gateway transaction id against it.
func (s *Service) InitiatePayPal(ctx context.Context, orderID uint) (*InitiationResponse, error) {
	o, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentMethodPayPal {
		return nil, ErrWrongPaymentMethod
	}
	if err := o.CanMarkPaid(); err != nil {
		return nil, err
	}

	paypalOrder, err := s.paypal.CreateOrder(ctx, o.TotalPrice.StringFixed(2))
	if err != nil {
		return nil, fmt.Errorf("failed to create PayPal order: %w", err)
	}

	if _, err := s.orderService.RecordGatewayOrder(orderID, paypalOrder.ID); err != nil {
		return nil, err
	}

	return &InitiationResponse{GatewayOrderID: paypalOrder.ID}, nil
}

// ApprovePayPal captures an approved PayPal order, verifies the capture
// against the transaction recorded at initiation and settles the order.
// A mismatched or non-completed capture leaves the order unpaid.
func (s *Service) ApprovePayPal(ctx context.Context, orderID uint, paypalOrderID string) (*order.Order, error) {
	o, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentMethodPayPal {
		return nil, ErrWrongPaymentMethod
	}
	if err := o.CanMarkPaid(); err != nil {
		return nil, err
	}

	capture, err := s.paypal.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to capture PayPal order: %w", err)
	}

	if err := VerifyCapture(o.PaymentResult.ID, capture.ID, capture.Status, paypalCompletedStatus); err != nil {
		return nil, err
	}

	return s.orderService.MarkPaid(orderID, &order.PaymentResult{
		ID:           capture.ID,
		Status:       capture.Status,
		EmailAddress: capture.Payer.EmailAddress,
		PricePaid:    capture.PricePaid(),
	})
}

// InitiateStripe opens a Stripe payment intent for an unpaid order and
// records the intent id against it.
func (s *Service) InitiateStripe(ctx context.Context, orderID uint) (*InitiationResponse, error) {
	o, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentMethodStripe {
		return nil, ErrWrongPaymentMethod
	}
	if err := o.CanMarkPaid(); err != nil {
		return nil, err
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, o.TotalPrice.StringFixed(2), orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if _, err := s.orderService.RecordGatewayOrder(orderID, intent.ID); err != nil {
		return nil, err
	}

	return &InitiationResponse{
		GatewayOrderID: intent.ID,
		ClientSecret:   intent.ClientSecret,
	}, nil
}

// ConfirmStripe retrieves the payment intent, verifies it against the
// transaction recorded at initiation and settles the order.
func (s *Service) ConfirmStripe(ctx context.Context, orderID uint, intentID string) (*order.Order, error) {
	o, err := s.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != order.PaymentMethodStripe {
		return nil, ErrWrongPaymentMethod
	}
	if err := o.CanMarkPaid(); err != nil {
		return nil, err
	}

	intent, err := s.stripe.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if err := VerifyCapture(o.PaymentResult.ID, intent.ID, intent.Status, stripeSucceededStatus); err != nil {
		return nil, err
	}

	return s.orderService.MarkPaid(orderID, &order.PaymentResult{
		ID:           intent.ID,
		Status:       intent.Status,
		EmailAddress: intent.ReceiptEmail,
		PricePaid:    intent.PricePaid(),
	})
}

// VerifyCapture checks that the gateway capture belongs to this order
// and reports success. The capture id must equal the transaction id
// recorded when the gateway order was opened, and the status must be
// the gateway's success sentinel.
func VerifyCapture(recordedID, captureID, captureStatus, successStatus string) error {
	if recordedID == "" || captureID == "" {
		return ErrPaymentVerificationFailed
	}
	if captureID != recordedID {
		return ErrPaymentVerificationFailed
	}
	if captureStatus != successStatus {
		return ErrPaymentVerificationFailed
	}
	return nil
}
