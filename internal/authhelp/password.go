// SPDX-License-Identifier: AGPL-3.0-only
package authhelp

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 10

var ErrWeakPassword = errors.New("password is too weak")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength requires a minimum length plus upper, lower and digit characters.
func ValidatePasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, MinPasswordLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	case !hasNumber:
		return fmt.Errorf("%w: must contain a number", ErrWeakPassword)
	}

	return nil
}
