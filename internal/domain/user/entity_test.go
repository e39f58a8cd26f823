// internal/domain/user/entity_test.go
package user

import "testing"

func TestIsAdmin(t *testing.T) {
	if (&User{Role: RoleUser}).IsAdmin() {
		t.Error("regular user should not be admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin user should be admin")
	}
}

func TestHasAddress(t *testing.T) {
	u := &User{}
	if u.HasAddress() {
		t.Error("empty address should not count")
	}

	u.Address = Address{StreetAddress: "123 Main St"}
	if u.HasAddress() {
		t.Error("address without city should not count")
	}

	u.Address = Address{StreetAddress: "123 Main St", City: "Anytown"}
	if !u.HasAddress() {
		t.Error("street and city should count as an address")
	}
}

func TestHasPaymentMethod(t *testing.T) {
	u := &User{}
	if u.HasPaymentMethod() {
		t.Error("unset payment method should not count")
	}

	u.PaymentMethod = "PayPal"
	if !u.HasPaymentMethod() {
		t.Error("set payment method should count")
	}
}
