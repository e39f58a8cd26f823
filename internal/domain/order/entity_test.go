// internal/domain/order/entity_test.go
package order

import (
	"errors"
	"testing"
	"time"
)

func TestCanMarkPaid(t *testing.T) {
	now := time.Now()

	t.Run("unpaid order can be marked paid", func(t *testing.T) {
		o := &Order{}
		if err := o.CanMarkPaid(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid order is rejected", func(t *testing.T) {
		o := &Order{IsPaid: true, PaidAt: &now}
		if err := o.CanMarkPaid(); !errors.Is(err, ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
	})
}

func TestCanMarkDelivered(t *testing.T) {
	now := time.Now()

	t.Run("paid undelivered order can be marked delivered", func(t *testing.T) {
		o := &Order{IsPaid: true, PaidAt: &now}
		if err := o.CanMarkDelivered(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unpaid order is rejected", func(t *testing.T) {
		o := &Order{}
		if err := o.CanMarkDelivered(); !errors.Is(err, ErrOrderNotPaid) {
			t.Fatalf("expected ErrOrderNotPaid, got %v", err)
		}
	})

	t.Run("delivered order is rejected", func(t *testing.T) {
		o := &Order{IsPaid: true, PaidAt: &now, IsDelivered: true, DeliveredAt: &now}
		if err := o.CanMarkDelivered(); !errors.Is(err, ErrAlreadyDelivered) {
			t.Fatalf("expected ErrAlreadyDelivered, got %v", err)
		}
	})
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery} {
		if !IsValidPaymentMethod(m) {
			t.Errorf("IsValidPaymentMethod(%q) = false, want true", m)
		}
	}
	if IsValidPaymentMethod("Bitcoin") {
		t.Error("IsValidPaymentMethod(Bitcoin) = true, want false")
	}
}

func TestPaymentResultIsZero(t *testing.T) {
	if !(PaymentResult{}).IsZero() {
		t.Error("empty result should be zero")
	}
	if (PaymentResult{ID: "5O190127TN364715T"}).IsZero() {
		t.Error("result with id should not be zero")
	}
}
