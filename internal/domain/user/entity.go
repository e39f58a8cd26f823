// internal/domain/user/entity.go
package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address is the user's shipping address on file. Orders copy it at
// checkout; later edits do not touch past orders.
type Address struct {
	FullName      string `gorm:"size:255" json:"full_name"`
	StreetAddress string `gorm:"size:255" json:"street_address"`
	City          string `gorm:"size:100" json:"city"`
	PostalCode    string `gorm:"size:20" json:"postal_code"`
	Country       string `gorm:"size:100" json:"country"`
}

// User represents the user entity
type User struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null;size:255" json:"name"`
	Email         string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string  `gorm:"not null;size:255" json:"-"`
	Role          string  `gorm:"not null;size:20;default:'user'" json:"role"`
	Address       Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PaymentMethod string  `gorm:"size:50" json:"payment_method"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasAddress reports whether a shipping address is on file.
func (u *User) HasAddress() bool {
	return u.Address.StreetAddress != "" && u.Address.City != ""
}

// HasPaymentMethod reports whether a payment method has been selected.
func (u *User) HasPaymentMethod() bool {
	return u.PaymentMethod != ""
}
