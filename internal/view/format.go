package view

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormatPrice renders a price to two decimal places with a currency
// sign.
func FormatPrice(price decimal.Decimal) string {
	return "$" + price.StringFixed(2)
}

// Capitalize upper-cases the first letter of a string.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// FormatDate renders a date as a readable string.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// ValidEmail reports whether the string looks like an email address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
