// internal/domain/pricing/calc_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(price string, qty int) Item {
	return Item{Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestCalculate(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name          string
		items         []Item
		itemsPrice    string
		shippingPrice string
		taxPrice      string
		totalPrice    string
	}{
		{
			name:          "empty cart",
			items:         nil,
			itemsPrice:    "0.00",
			shippingPrice: "10.00",
			taxPrice:      "0.00",
			totalPrice:    "10.00",
		},
		{
			name:          "two units of one product",
			items:         []Item{item("25.00", 2)},
			itemsPrice:    "50.00",
			shippingPrice: "10.00",
			taxPrice:      "7.50",
			totalPrice:    "67.50",
		},
		{
			name:          "exactly at free shipping threshold still pays shipping",
			items:         []Item{item("100.00", 1)},
			itemsPrice:    "100.00",
			shippingPrice: "10.00",
			taxPrice:      "15.00",
			totalPrice:    "125.00",
		},
		{
			name:          "one cent above threshold ships free",
			items:         []Item{item("100.01", 1)},
			itemsPrice:    "100.01",
			shippingPrice: "0.00",
			taxPrice:      "15.00",
			totalPrice:    "115.01",
		},
		{
			name:          "tax rounds half up at the cent",
			items:         []Item{item("0.10", 1)},
			itemsPrice:    "0.10",
			shippingPrice: "10.00",
			taxPrice:      "0.02", // 0.015 rounds up
			totalPrice:    "10.12",
		},
		{
			name:          "multiple lines",
			items:         []Item{item("59.99", 1), item("19.99", 3)},
			itemsPrice:    "119.96",
			shippingPrice: "0.00",
			taxPrice:      "17.99",
			totalPrice:    "137.95",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := rules.Calculate(tt.items)
			itemsPrice, shippingPrice, taxPrice, totalPrice := totals.Strings()

			if itemsPrice != tt.itemsPrice {
				t.Errorf("itemsPrice = %s, want %s", itemsPrice, tt.itemsPrice)
			}
			if shippingPrice != tt.shippingPrice {
				t.Errorf("shippingPrice = %s, want %s", shippingPrice, tt.shippingPrice)
			}
			if taxPrice != tt.taxPrice {
				t.Errorf("taxPrice = %s, want %s", taxPrice, tt.taxPrice)
			}
			if totalPrice != tt.totalPrice {
				t.Errorf("totalPrice = %s, want %s", totalPrice, tt.totalPrice)
			}

			// Total always equals the sum of its parts.
			sum := totals.ItemsPrice.Add(totals.ShippingPrice).Add(totals.TaxPrice)
			if !sum.Equal(totals.TotalPrice) {
				t.Errorf("total %s != items+shipping+tax %s", totals.TotalPrice, sum)
			}
		})
	}
}

func TestCalculateDeterministic(t *testing.T) {
	rules := DefaultRules()
	items := []Item{item("19.99", 2), item("4.50", 1)}

	first := rules.Calculate(items)
	for i := 0; i < 100; i++ {
		again := rules.Calculate(items)
		if !again.TotalPrice.Equal(first.TotalPrice) || !again.TaxPrice.Equal(first.TaxPrice) {
			t.Fatalf("calculation not deterministic: %+v vs %+v", again, first)
		}
	}
}
