// internal/domain/order/entity.go
package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lifecycle guard errors
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyPaid      = errors.New("order is already paid")
	ErrOrderNotPaid     = errors.New("order is not paid")
	ErrAlreadyDelivered = errors.New("order is already delivered")
)

// PaymentMethod identifies how an order is settled
type PaymentMethod string

const (
	PaymentMethodPayPal         PaymentMethod = "PayPal"
	PaymentMethodStripe         PaymentMethod = "Stripe"
	PaymentMethodCashOnDelivery PaymentMethod = "CashOnDelivery"
)

// IsValidPaymentMethod reports whether m is one of the supported methods.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// Address is the shipping address snapshot embedded in an order. It is
// copied from the user at checkout and never follows later edits.
type Address struct {
	FullName      string `gorm:"size:255" json:"full_name"`
	StreetAddress string `gorm:"size:255" json:"street_address"`
	City          string `gorm:"size:100" json:"city"`
	PostalCode    string `gorm:"size:20" json:"postal_code"`
	Country       string `gorm:"size:100" json:"country"`
}

// PaymentResult records the payment gateway's view of an order. The
// gateway transaction id is written when the gateway order is opened and
// verified against the capture response before settlement.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
	PricePaid    string `json:"price_paid"`
}

// IsZero reports whether no gateway interaction has been recorded.
func (p PaymentResult) IsZero() bool {
	return p.ID == "" && p.Status == "" && p.EmailAddress == "" && p.PricePaid == ""
}

// Value implements driver.Valuer
func (p PaymentResult) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *PaymentResult) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentResult{}
		return nil
	}

	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, p)
	case string:
		return json.Unmarshal([]byte(data), p)
	default:
		return fmt.Errorf("unsupported type for payment result: %T", value)
	}
}

// Order is an immutable snapshot of a cart at checkout time. After
// creation only the payment and delivery flags ever change, and both are
// monotonic: once set they never revert.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	PaymentMethod PaymentMethod `gorm:"not null;size:50" json:"payment_method"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	ItemsPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"items_price"`
	ShippingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_price"`
	TaxPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax_price"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`

	IsPaid        bool          `gorm:"not null;default:false" json:"is_paid"`
	PaidAt        *time.Time    `json:"paid_at"`
	PaymentResult PaymentResult `gorm:"type:jsonb" json:"payment_result"`

	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`

	// Populated by list queries that join users
	UserName string `gorm:"->;-:migration" json:"user_name,omitempty"`
}

// OrderItem is a line-item snapshot frozen at order creation. It carries
// its own copy of name, slug, image and price so historical orders stay
// stable when the product changes later.
type OrderItem struct {
	OrderID   uint            `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID uint            `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Slug      string          `gorm:"not null;size:255" json:"slug"`
	Image     string          `gorm:"size:255" json:"image"`
	Quantity  int             `gorm:"not null" json:"qty"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// CanMarkPaid checks the settlement guard: an order may only transition
// to paid once.
func (o *Order) CanMarkPaid() error {
	if o.IsPaid {
		return ErrAlreadyPaid
	}
	return nil
}

// CanMarkDelivered checks the delivery guard: delivery requires payment
// and happens at most once.
func (o *Order) CanMarkDelivered() error {
	if !o.IsPaid {
		return ErrOrderNotPaid
	}
	if o.IsDelivered {
		return ErrAlreadyDelivered
	}
	return nil
}
