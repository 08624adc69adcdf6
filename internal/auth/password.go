package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is tuned so a single comparison takes on the order of 100ms on
// current hardware.
const BcryptCost = 12

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// HashPassword creates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a candidate password against a stored hash.
// bcrypt's comparison is constant-time over the derived key.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword checks password strength requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
