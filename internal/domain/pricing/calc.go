// internal/domain/pricing/calc.go
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/config"
)

// Item is a single priced line used as calculator input.
type Item struct {
	Price    decimal.Decimal
	Quantity int
}

// Totals represents the derived price breakdown of a cart or order.
// All values are rounded to the cent (half up).
type Totals struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

// Strings returns the four totals as fixed two-decimal strings.
func (t Totals) Strings() (itemsPrice, shippingPrice, taxPrice, totalPrice string) {
	return t.ItemsPrice.StringFixed(2),
		t.ShippingPrice.StringFixed(2),
		t.TaxPrice.StringFixed(2),
		t.TotalPrice.StringFixed(2)
}

// Rules holds the business rules for checkout pricing.
type Rules struct {
	FreeShippingThreshold decimal.Decimal // orders above this ship free
	ShippingPrice         decimal.Decimal // flat rate below the threshold
	TaxRate               decimal.Decimal
}

// DefaultRules returns the standard storefront pricing rules:
// free shipping above 100, flat 10 otherwise, 15% tax.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingPrice:         decimal.NewFromInt(10),
		TaxRate:               decimal.NewFromFloat(0.15),
	}
}

// RulesFromConfig parses pricing rules from configuration.
func RulesFromConfig(cfg *config.Config) (Rules, error) {
	threshold, err := decimal.NewFromString(cfg.Pricing.FreeShippingThreshold)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid FREE_SHIPPING_THRESHOLD: %w", err)
	}

	shipping, err := decimal.NewFromString(cfg.Pricing.ShippingPrice)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid SHIPPING_PRICE: %w", err)
	}

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		return Rules{}, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	return Rules{
		FreeShippingThreshold: threshold,
		ShippingPrice:         shipping,
		TaxRate:               taxRate,
	}, nil
}

// Calculate derives items, shipping, tax and total prices from the given
// lines. It is pure: identical input always yields identical output.
func (r Rules) Calculate(items []Item) Totals {
	itemsPrice := decimal.Zero
	for _, item := range items {
		itemsPrice = itemsPrice.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	itemsPrice = itemsPrice.Round(2)

	// Shipping is free strictly above the threshold: a 100.00 order
	// still pays shipping, a 100.01 order does not.
	shippingPrice := r.ShippingPrice
	if itemsPrice.GreaterThan(r.FreeShippingThreshold) {
		shippingPrice = decimal.Zero
	}
	shippingPrice = shippingPrice.Round(2)

	taxPrice := itemsPrice.Mul(r.TaxRate).Round(2)
	totalPrice := itemsPrice.Add(shippingPrice).Add(taxPrice).Round(2)

	return Totals{
		ItemsPrice:    itemsPrice,
		ShippingPrice: shippingPrice,
		TaxPrice:      taxPrice,
		TotalPrice:    totalPrice,
	}
}
