// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/your-org/storefront-backend/internal/config"
)

// Service handles all email operations
type Service struct {
	config    *config.Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	service := &Service{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}

	service.templates["purchase_receipt"] = template.Must(
		template.New("purchase_receipt").Parse(purchaseReceiptTemplate))

	return service
}

// SendPurchaseReceipt sends a receipt for a settled order. Called once
// per settlement, after the payment transaction has committed.
func (s *Service) SendPurchaseReceipt(ctx context.Context, data PurchaseReceiptData) error {
	data.SiteName = s.config.Email.FromName
	data.SiteURL = s.config.App.BaseURL

	htmlContent, err := s.renderTemplate("purchase_receipt", data)
	if err != nil {
		return fmt.Errorf("failed to render purchase receipt template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order confirmation #%d", data.OrderID),
		HTMLContent: htmlContent,
	}

	return s.sendSMTPEmail(email)
}

func (s *Service) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const purchaseReceiptTemplate = `
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Thanks for your order, {{.UserName}}!</h2>
  <p>Order #{{.OrderID}} placed on {{.OrderDate}}, paid via {{.PaymentMethod}}.</p>

  <table cellpadding="6" cellspacing="0" border="0">
    <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td><td align="right">${{.Price}}</td></tr>
    {{end}}
  </table>

  <p>
    Items: ${{.ItemsPrice}}<br/>
    Shipping: ${{.ShippingPrice}}<br/>
    Tax: ${{.TaxPrice}}<br/>
    <strong>Total: ${{.TotalPrice}}</strong>
  </p>

  <p>
    Shipping to:<br/>
    {{.ShippingName}}<br/>
    {{.ShippingStreet}}<br/>
    {{.ShippingCity}} {{.ShippingPostal}}, {{.ShippingCountry}}
  </p>

  <p><a href="{{.SiteURL}}/orders/{{.OrderID}}">View your order</a></p>
  <p>{{.SiteName}}</p>
</body>
</html>
`
