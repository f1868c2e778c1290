// Package validation holds the account field format rules. All checks are
// pure functions; callers collect every applicable error before deciding
// whether a submission may be committed.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Field errors carry the exact messages shown next to the form fields.
var (
	ErrUsernameFormat   = errors.New("Username must be 8-15 alphanumeric characters")
	ErrEmailFormat      = errors.New("Invalid email format")
	ErrPasswordFormat   = errors.New("Password must be 8-15 characters composed of letters, numbers, and special characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

// passwordSymbols is the only symbol set a password may draw from.
const passwordSymbols = "@$!%*?&"

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ValidateUsername checks that s is 8-15 ASCII letters/digits containing at
// least one letter and at least one digit.
func ValidateUsername(s string) error {
	if err := validate.Var(s, "required,alphanum,min=8,max=15"); err != nil {
		return ErrUsernameFormat
	}
	hasLetter, hasDigit := false, false
	for i := 0; i < len(s); i++ {
		switch {
		case isLetter(s[i]):
			hasLetter = true
		case isDigit(s[i]):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrUsernameFormat
	}
	return nil
}

// ValidateEmail checks that s has standard email address syntax.
func ValidateEmail(s string) error {
	if err := validate.Var(s, "required,email"); err != nil {
		return ErrEmailFormat
	}
	return nil
}

// ValidatePassword checks that s is 8-15 characters drawn only from letters,
// digits and the @$!%*?& symbol set, with at least one of each class. Only
// call it for a non-empty submitted password.
func ValidatePassword(s string) error {
	if len(s) < 8 || len(s) > 15 {
		return ErrPasswordFormat
	}
	hasLetter, hasDigit, hasSymbol := false, false, false
	for i := 0; i < len(s); i++ {
		switch {
		case isLetter(s[i]):
			hasLetter = true
		case isDigit(s[i]):
			hasDigit = true
		case strings.IndexByte(passwordSymbols, s[i]) >= 0:
			hasSymbol = true
		default:
			return ErrPasswordFormat
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return ErrPasswordFormat
	}
	return nil
}

// ValidateConfirmation checks that the re-entered password matches exactly.
func ValidateConfirmation(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
