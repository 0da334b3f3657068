// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength matches the registration validation rule.
const MinPasswordLength = 6

// cost is the bcrypt work factor. Configurable at startup; tests drop
// it to the minimum so DB-backed suites stay fast.
var cost atomic.Int32

func init() {
	cost.Store(12)
}

// SetCost overrides the bcrypt cost. Values outside bcrypt's valid
// range are ignored.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		return
	}
	cost.Store(int32(c))
}

// HashPassword hashes a password with bcrypt at the configured cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), int(cost.Load()))
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ErrPasswordTooShort is returned by ValidatePassword.
var ErrPasswordTooShort = errors.New("please enter a password with 6 or more characters")

// ValidatePassword enforces the minimum length rule.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
