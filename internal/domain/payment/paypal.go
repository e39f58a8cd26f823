// internal/domain/payment/paypal.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// PayPalClient talks to the PayPal Orders v2 API. Access tokens are
// obtained with the client-credentials grant and cached until shortly
// before expiry.
type PayPalClient struct {
	clientID   string
	secret     string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewPayPalClient creates a PayPal API client from config
func NewPayPalClient(cfg *config.Config) *PayPalClient {
	return &PayPalClient{
		clientID: cfg.Payment.PayPal.ClientID,
		secret:   cfg.Payment.PayPal.Secret,
		baseURL:  strings.TrimRight(cfg.Payment.PayPal.APIURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PayPalOrder is the subset of the Orders v2 order resource we use
type PayPalOrder struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PayPalCapture is the capture response, flattened to the fields the
// settlement workflow verifies.
type PayPalCapture struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				Amount struct {
					Value string `json:"value"`
				} `json:"amount"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

// PricePaid returns the captured amount, or "0" when the response
// carried none.
func (c *PayPalCapture) PricePaid() string {
	for _, unit := range c.PurchaseUnits {
		for _, capture := range unit.Payments.Captures {
			if capture.Amount.Value != "" {
				return capture.Amount.Value
			}
		}
	}
	return "0"
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// CreateOrder opens a PayPal order for the given amount.
func (p *PayPalClient) CreateOrder(ctx context.Context, amount string) (*PayPalOrder, error) {
	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": "USD",
					"value":         amount,
				},
			},
		},
	}

	respBody, err := p.makeAPICall(ctx, http.MethodPost, "/v2/checkout/orders", body)
	if err != nil {
		return nil, err
	}

	var order PayPalOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to parse PayPal order response: %w", err)
	}
	return &order, nil
}

// CaptureOrder captures an approved PayPal order.
func (p *PayPalClient) CaptureOrder(ctx context.Context, paypalOrderID string) (*PayPalCapture, error) {
	endpoint := fmt.Sprintf("/v2/checkout/orders/%s/capture", paypalOrderID)
	respBody, err := p.makeAPICall(ctx, http.MethodPost, endpoint, struct{}{})
	if err != nil {
		return nil, err
	}

	var capture PayPalCapture
	if err := json.Unmarshal(respBody, &capture); err != nil {
		return nil, fmt.Errorf("failed to parse PayPal capture response: %w", err)
	}
	return &capture, nil
}

// token returns a valid access token, refreshing it when the cached one
// is missing or about to expire.
func (p *PayPalClient) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return p.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.clientID, p.secret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request PayPal token: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("PayPal token request failed with status %d: %s", resp.StatusCode, respBody.String())
	}

	var token paypalTokenResponse
	if err := json.Unmarshal(respBody.Bytes(), &token); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	p.accessToken = token.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return p.accessToken, nil
}

// makeAPICall makes authenticated HTTP calls to the PayPal API
func (p *PayPalClient) makeAPICall(ctx context.Context, method, endpoint string, data interface{}) ([]byte, error) {
	accessToken, err := p.token(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody []byte
	if data != nil {
		reqBody, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	var respBody bytes.Buffer
	if _, err := respBody.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("PayPal API call failed with status %d: %s", resp.StatusCode, respBody.String())
	}

	return respBody.Bytes(), nil
}
