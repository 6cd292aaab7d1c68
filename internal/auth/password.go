package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the most bcrypt accepts.
	MaxPasswordBytes = 72
)

// ValidatePassword applies the rules every new password must meet.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must have at least %d characters: %w", MinPasswordLength, errdefs.ErrValidation)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("password must have at most %d bytes: %w", MaxPasswordBytes, errdefs.ErrValidation)
	}
	return nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("password must have at most %d bytes: %w", MaxPasswordBytes, errdefs.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches stored. Records imported
// from the browser app keep their plaintext password and are compared in
// constant time.
func CheckPassword(stored, password string) bool {
	if IsHashed(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
