// internal/domain/cart/entity.go
package cart

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors for cart mutations
var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrInsufficientStock = errors.New("not enough stock")
)

// Item is a snapshot of a product placed in a cart. Price is captured
// at add time and carried into the order unchanged.
type Item struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Quantity  int             `json:"qty"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
}

// Items is the ordered item list of a cart, stored as a single jsonb
// document. The whole list is written back on every mutation.
type Items []Item

// Value implements driver.Valuer
func (items Items) Value() (driver.Value, error) {
	if items == nil {
		items = Items{}
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner
func (items *Items) Scan(value interface{}) error {
	if value == nil {
		*items = Items{}
		return nil
	}

	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, items)
	case string:
		return json.Unmarshal([]byte(data), items)
	default:
		return fmt.Errorf("unsupported type for cart items: %T", value)
	}
}

// Find returns the index of the line for a product, or -1.
func (items Items) Find(productID uint) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// TotalQuantity sums the quantities of all lines.
func (items Items) TotalQuantity() int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Cart represents a shopping cart owned by either a signed-in user or an
// anonymous guest session, never both.
type Cart struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    *uint  `gorm:"index" json:"user_id,omitempty"`
	SessionID string `gorm:"size:64;index" json:"session_id,omitempty"`

	Items Items `gorm:"type:jsonb" json:"items"`

	// Derived price fields, recomputed on every mutation
	ItemsPrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"items_price"`
	ShippingPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"shipping_price"`
	TaxPrice      decimal.Decimal `gorm:"type:numeric(12,2)" json:"tax_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Cart) TableName() string { return "carts" }

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// addItem applies the add-to-cart rules to an item list and returns the
// new list. stock is the product's current available quantity.
//
//   - item already present: quantity grows by one, requires stock to
//     cover the grown quantity
//   - item absent: appended as given, requires at least one unit
func addItem(items Items, item Item, stock int) (Items, error) {
	if i := items.Find(item.ProductID); i >= 0 {
		if stock < items[i].Quantity+1 {
			return nil, ErrInsufficientStock
		}
		updated := make(Items, len(items))
		copy(updated, items)
		updated[i].Quantity++
		return updated, nil
	}

	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if stock < item.Quantity {
		return nil, ErrInsufficientStock
	}
	return append(append(Items{}, items...), item), nil
}

// removeItem decrements a line by one, dropping the line entirely when
// its quantity reaches zero.
func removeItem(items Items, productID uint) (Items, error) {
	i := items.Find(productID)
	if i < 0 {
		return nil, ErrItemNotFound
	}

	updated := make(Items, len(items))
	copy(updated, items)

	if updated[i].Quantity <= 1 {
		return append(updated[:i], updated[i+1:]...), nil
	}
	updated[i].Quantity--
	return updated, nil
}
