// internal/domain/cart/entity_test.go
package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func line(productID uint, qty int, price string) Item {
	return Item{
		ProductID: productID,
		Name:      "test product",
		Slug:      "test-product",
		Quantity:  qty,
		Price:     decimal.RequireFromString(price),
	}
}

func TestAddItem(t *testing.T) {
	t.Run("appends new line", func(t *testing.T) {
		items, err := addItem(Items{line(1, 2, "25.00")}, line(2, 1, "9.99"), 5)
		if err != nil {
			t.Fatalf("addItem: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("len(items) = %d, want 2", len(items))
		}
		if items[1].ProductID != 2 || items[1].Quantity != 1 {
			t.Errorf("unexpected appended line: %+v", items[1])
		}
	})

	t.Run("increments existing line by one", func(t *testing.T) {
		items, err := addItem(Items{line(1, 2, "25.00")}, line(1, 1, "25.00"), 5)
		if err != nil {
			t.Fatalf("addItem: %v", err)
		}
		if len(items) != 1 || items[0].Quantity != 3 {
			t.Fatalf("quantity = %d, want 3", items[0].Quantity)
		}
	})

	t.Run("rejects increment beyond stock", func(t *testing.T) {
		// stock 1, already one in cart: the second add must fail
		_, err := addItem(Items{line(1, 1, "25.00")}, line(1, 1, "25.00"), 1)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("err = %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("rejects new line with zero stock", func(t *testing.T) {
		_, err := addItem(Items{}, line(1, 1, "25.00"), 0)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("err = %v, want ErrInsufficientStock", err)
		}
	})

	t.Run("does not mutate the input list", func(t *testing.T) {
		original := Items{line(1, 2, "25.00")}
		if _, err := addItem(original, line(1, 1, "25.00"), 10); err != nil {
			t.Fatalf("addItem: %v", err)
		}
		if original[0].Quantity != 2 {
			t.Errorf("input list mutated: quantity = %d", original[0].Quantity)
		}
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("decrements multi-unit line", func(t *testing.T) {
		items, err := removeItem(Items{line(1, 3, "25.00")}, 1)
		if err != nil {
			t.Fatalf("removeItem: %v", err)
		}
		if len(items) != 1 || items[0].Quantity != 2 {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("drops single-unit line", func(t *testing.T) {
		items, err := removeItem(Items{line(1, 1, "25.00"), line(2, 1, "9.99")}, 1)
		if err != nil {
			t.Fatalf("removeItem: %v", err)
		}
		if len(items) != 1 || items[0].ProductID != 2 {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		_, err := removeItem(Items{line(1, 1, "25.00")}, 42)
		if !errors.Is(err, ErrItemNotFound) {
			t.Fatalf("err = %v, want ErrItemNotFound", err)
		}
	})
}

func TestItemsHelpers(t *testing.T) {
	items := Items{line(1, 2, "25.00"), line(2, 3, "9.99")}

	if got := items.Find(2); got != 1 {
		t.Errorf("Find(2) = %d, want 1", got)
	}
	if got := items.Find(99); got != -1 {
		t.Errorf("Find(99) = %d, want -1", got)
	}
	if got := items.TotalQuantity(); got != 5 {
		t.Errorf("TotalQuantity() = %d, want 5", got)
	}
}
