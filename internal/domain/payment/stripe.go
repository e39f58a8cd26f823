// internal/domain/payment/stripe.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
)

// StripeClient talks to the Stripe Payment Intents API. Stripe takes
// form-encoded requests and amounts in the currency's smallest unit.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewStripeClient creates a Stripe API client from config
func NewStripeClient(cfg *config.Config) *StripeClient {
	baseURL := cfg.Payment.Stripe.APIURL
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeClient{
		secretKey: cfg.Payment.Stripe.SecretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StripePaymentIntent is the subset of the payment intent resource the
// settlement workflow uses.
type StripePaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	ClientSecret string `json:"client_secret"`
	ReceiptEmail string `json:"receipt_email"`
}

// PricePaid returns the intent amount in major units as a two-decimal
// string.
func (i *StripePaymentIntent) PricePaid() string {
	return decimal.NewFromInt(i.Amount).Shift(-2).StringFixed(2)
}

// CreatePaymentIntent opens a payment intent for the given amount. The
// amount is a two-decimal string in major units and is converted to
// cents on the wire.
func (s *StripeClient) CreatePaymentIntent(ctx context.Context, amount string, orderID uint) (*StripePaymentIntent, error) {
	major, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	cents := major.Shift(2).IntPart()

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", cents))
	form.Set("currency", "usd")
	form.Set("metadata[order_id]", fmt.Sprintf("%d", orderID))

	respBody, err := s.makeAPICall(ctx, http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}

	var intent StripePaymentIntent
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent response: %w", err)
	}
	return &intent, nil
}

// GetPaymentIntent retrieves a payment intent by id.
func (s *StripeClient) GetPaymentIntent(ctx context.Context, intentID string) (*StripePaymentIntent, error) {
	respBody, err := s.makeAPICall(ctx, http.MethodGet, "/v1/payment_intents/"+intentID, nil)
	if err != nil {
		return nil, err
	}

	var intent StripePaymentIntent
	if err := json.Unmarshal(respBody, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse payment intent response: %w", err)
	}
	return &intent, nil
}

// makeAPICall makes authenticated form-encoded calls to the Stripe API
func (s *StripeClient) makeAPICall(ctx context.Context, method, endpoint string, form url.Values) ([]byte, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("Stripe API call failed with status %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}
