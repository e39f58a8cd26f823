// internal/domain/payment/paypal_test.go
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestPayPalServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s, want POST", r.Method)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-client" || pass != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "A21AAtest",
			"expires_in":   32400,
		})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer A21AAtest" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode order request: %v", err)
		}
		if body.Intent != "CAPTURE" {
			t.Errorf("intent = %q, want CAPTURE", body.Intent)
		}
		if len(body.PurchaseUnits) != 1 || body.PurchaseUnits[0].Amount.Value != "137.95" {
			t.Errorf("unexpected purchase units: %+v", body.PurchaseUnits)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "5O190127TN364715T",
			"status": "CREATED",
		})
	})
	mux.HandleFunc("/v2/checkout/orders/5O190127TN364715T/capture", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "5O190127TN364715T",
			"status": "COMPLETED",
			"payer": map[string]string{
				"email_address": "buyer@example.com",
			},
			"purchase_units": []map[string]interface{}{
				{
					"payments": map[string]interface{}{
						"captures": []map[string]interface{}{
							{"amount": map[string]string{"value": "137.95"}},
						},
					},
				},
			},
		})
	})

	return httptest.NewServer(mux)
}

func newTestPayPalClient(serverURL string) *PayPalClient {
	return &PayPalClient{
		clientID:   "test-client",
		secret:     "test-secret",
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestPayPalCreateOrder(t *testing.T) {
	server := newTestPayPalServer(t)
	defer server.Close()

	client := newTestPayPalClient(server.URL)
	order, err := client.CreateOrder(context.Background(), "137.95")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID != "5O190127TN364715T" {
		t.Errorf("order id = %q, want 5O190127TN364715T", order.ID)
	}
	if order.Status != "CREATED" {
		t.Errorf("order status = %q, want CREATED", order.Status)
	}
}

func TestPayPalCaptureOrder(t *testing.T) {
	server := newTestPayPalServer(t)
	defer server.Close()

	client := newTestPayPalClient(server.URL)
	capture, err := client.CaptureOrder(context.Background(), "5O190127TN364715T")
	if err != nil {
		t.Fatalf("CaptureOrder failed: %v", err)
	}
	if capture.Status != "COMPLETED" {
		t.Errorf("capture status = %q, want COMPLETED", capture.Status)
	}
	if capture.Payer.EmailAddress != "buyer@example.com" {
		t.Errorf("payer email = %q", capture.Payer.EmailAddress)
	}
	if got := capture.PricePaid(); got != "137.95" {
		t.Errorf("PricePaid() = %q, want 137.95", got)
	}
}

func TestPayPalTokenCached(t *testing.T) {
	tokenRequests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "A21AAtest",
			"expires_in":   32400,
		})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "X", "status": "CREATED"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestPayPalClient(server.URL)
	for i := 0; i < 3; i++ {
		if _, err := client.CreateOrder(context.Background(), "10.00"); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
	}
	if tokenRequests != 1 {
		t.Errorf("token requested %d times, want 1", tokenRequests)
	}
}

func TestPayPalAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "A21AAtest",
			"expires_in":   32400,
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestPayPalClient(server.URL)
	_, err := client.CreateOrder(context.Background(), "10.00")
	if err == nil {
		t.Fatal("expected error on 422 response")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error should carry status code, got: %v", err)
	}
}
