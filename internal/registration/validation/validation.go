// Package validation holds the registration form rules. Every function is
// pure: flags are always recomputed from the current values, never patched.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/judydsp/provabruno/internal/registration/models"
)

// DeniedEmail is rejected regardless of shape.
const DeniedEmail = "teste@test.com"

const (
	MinPasswordLength = 8
	PasswordSymbols   = "!@#$%^&*"
)

// blank matches the whitespace set used by the mobile client, which is wider
// than RE2's \s.
const blank = `\s\x0B\p{Z}\x{FEFF}`

var emailPattern = regexp.MustCompile(`^[^` + blank + `@]+@[^` + blank + `@]+\.[^` + blank + `@]+$`)

// ValidateEmail reports whether s has a local@domain.tld shape and is not
// the denied address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s) && s != DeniedEmail
}

// ValidatePassword reports whether s is at least MinPasswordLength UTF-16
// code units long and contains an uppercase ASCII letter, an ASCII digit and
// one of PasswordSymbols. Line terminators are not accepted.
func ValidatePassword(s string) bool {
	var units int
	var upper, digit, symbol bool
	for _, r := range s {
		units += utf16.RuneLen(r)
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029':
			return false
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return units >= MinPasswordLength && upper && digit && symbol
}

// ValidateConfirmation reports whether confirm is non-empty and equal to
// password byte for byte.
func ValidateConfirmation(password, confirm string) bool {
	return confirm != "" && confirm == password
}

// Derive recomputes every flag from f in one step.
func Derive(f models.Fields) models.Flags {
	flags := models.Flags{
		EmailError:    !ValidateEmail(f.Email),
		PasswordError: !ValidatePassword(f.Password),
		ConfirmError:  !ValidateConfirmation(f.Password, f.ConfirmPassword),
	}
	flags.FormValid = !flags.EmailError && !flags.PasswordError && !flags.ConfirmError
	return flags
}

// IsFormValid reports whether all three fields pass.
func IsFormValid(f models.Fields) bool {
	return Derive(f).FormValid
}

// Validate returns nil when f is valid, otherwise a *models.ValidationError
// naming every failing rule in field order.
func Validate(f models.Fields) error {
	flags := Derive(f)
	if flags.FormValid {
		return nil
	}
	var kinds []models.ValidationKind
	if flags.EmailError {
		kinds = append(kinds, models.InvalidEmail)
	}
	if flags.PasswordError {
		kinds = append(kinds, models.WeakPassword)
	}
	if flags.ConfirmError {
		kinds = append(kinds, models.ConfirmationMismatch)
	}
	return &models.ValidationError{Kinds: kinds}
}
