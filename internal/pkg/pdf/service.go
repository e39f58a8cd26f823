// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceItem is one order line rendered on the invoice
type InvoiceItem struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	SiteName      string
	SiteURL       string

	BuyerName     string
	StreetAddress string
	City          string
	PostalCode    string
	Country       string

	PaymentMethod string
	PaidAt        string

	Items         []InvoiceItem
	ItemsPrice    string
	ShippingPrice string
	TaxPrice      string
	TotalPrice    string
}

// GenerateInvoice renders a PDF invoice for a paid order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := s.buildInvoiceData(o)

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) buildInvoiceData(o *order.Order) InvoiceData {
	items := make([]InvoiceItem, 0, len(o.Items))
	for _, item := range o.Items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, InvoiceItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
			Subtotal: subtotal.StringFixed(2),
		})
	}

	paidAt := ""
	if o.PaidAt != nil {
		paidAt = o.PaidAt.Format("January 2, 2006")
	}

	return InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%d", o.ID),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		SiteName:      s.config.App.Name,
		SiteURL:       s.config.App.BaseURL,
		BuyerName:     o.ShippingAddress.FullName,
		StreetAddress: o.ShippingAddress.StreetAddress,
		City:          o.ShippingAddress.City,
		PostalCode:    o.ShippingAddress.PostalCode,
		Country:       o.ShippingAddress.Country,
		PaymentMethod: string(o.PaymentMethod),
		PaidAt:        paidAt,
		Items:         items,
		ItemsPrice:    o.ItemsPrice.StringFixed(2),
		ShippingPrice: o.ShippingPrice.StringFixed(2),
		TaxPrice:      o.TaxPrice.StringFixed(2),
		TotalPrice:    o.TotalPrice.StringFixed(2),
	}
}

// generateHTML generates HTML content from the invoice template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
