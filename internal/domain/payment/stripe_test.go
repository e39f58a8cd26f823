// internal/domain/payment/stripe_test.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestStripeClient(serverURL string) *StripeClient {
	return &StripeClient{
		secretKey:  "sk_test_123",
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestStripeCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "13795" {
			t.Errorf("amount = %q, want 13795 cents", got)
		}
		if got := r.PostForm.Get("currency"); got != "usd" {
			t.Errorf("currency = %q, want usd", got)
		}
		if got := r.PostForm.Get("metadata[order_id]"); got != "42" {
			t.Errorf("metadata[order_id] = %q, want 42", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			"status":        "requires_payment_method",
			"amount":        13795,
			"client_secret": "pi_3MtwBwLkdIwHu7ix28a3tqPa_secret_abc",
		})
	}))
	defer server.Close()

	client := newTestStripeClient(server.URL)
	intent, err := client.CreatePaymentIntent(context.Background(), "137.95", 42)
	if err != nil {
		t.Fatalf("CreatePaymentIntent failed: %v", err)
	}
	if intent.ID != "pi_3MtwBwLkdIwHu7ix28a3tqPa" {
		t.Errorf("intent id = %q", intent.ID)
	}
	if intent.ClientSecret == "" {
		t.Error("client secret missing")
	}
}

func TestStripeGetPaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents/pi_123" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"status":        "succeeded",
			"amount":        6750,
			"receipt_email": "buyer@example.com",
		})
	}))
	defer server.Close()

	client := newTestStripeClient(server.URL)
	intent, err := client.GetPaymentIntent(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("GetPaymentIntent failed: %v", err)
	}
	if intent.Status != "succeeded" {
		t.Errorf("status = %q, want succeeded", intent.Status)
	}
	if got := intent.PricePaid(); got != "67.50" {
		t.Errorf("PricePaid() = %q, want 67.50", got)
	}
}

func TestStripeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error"}}`))
	}))
	defer server.Close()

	client := newTestStripeClient(server.URL)
	if _, err := client.CreatePaymentIntent(context.Background(), "10.00", 1); err == nil {
		t.Fatal("expected error on 402 response")
	}
}

func TestStripeInvalidAmount(t *testing.T) {
	client := newTestStripeClient("http://unused")
	if _, err := client.CreatePaymentIntent(context.Background(), "not-a-number", 1); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}
