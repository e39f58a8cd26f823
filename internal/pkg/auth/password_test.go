// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4},
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := pm.VerifyPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := pm.VerifyPassword("wrong password", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	if err := pm.ValidatePassword("short"); err == nil {
		t.Error("short password should be rejected")
	}
	if err := pm.ValidatePassword(strings.Repeat("x", 129)); err == nil {
		t.Error("overlong password should be rejected")
	}
	if err := pm.ValidatePassword("long enough password"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
}
