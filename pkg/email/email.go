// Package email derives display data from an email address.
package email

import (
	"strings"
	"unicode"
)

const fallbackName = "Usuario"

// DeriveNameFromEmail splits the local part on . _ - + and returns the first
// and last segments capitalized. Missing segments become "Usuario".
func DeriveNameFromEmail(addr string) (first, last string) {
	local, _, found := strings.Cut(addr, "@")
	if !found || local == "" {
		local = addr
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return strings.ContainsRune("._-+", r)
	})
	switch len(parts) {
	case 0:
		return fallbackName, fallbackName
	case 1:
		return capitalize(parts[0]), fallbackName
	default:
		return capitalize(parts[0]), capitalize(parts[len(parts)-1])
	}
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
