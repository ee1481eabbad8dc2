// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
)

// hashCost is the bcrypt work factor applied to stored account passwords.
const hashCost = 12

// minPasswordLength matches the register endpoint's binding rule, so
// requests reaching the usecase through other paths hit the same floor.
const minPasswordLength = 8

type passwordService struct{}

// NewPasswordService returns the bcrypt-backed password adapter.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{}
}

// HashPassword derives the storable hash for a plain password.
func (s *passwordService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports a mismatch as a non-nil error, following bcrypt's API.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords shorter than the minimum length.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
