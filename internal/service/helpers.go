package service

import (
	"fmt"
	"strconv"

	"commerce/internal/apperror"

	"github.com/shopspring/decimal"
)

// copySuffix is appended to duplicated display names by the copy operations.
const copySuffix = " (copy)"

func copyName(name string) string {
	return name + copySuffix
}

// incrementTrailingDigits bumps the trailing digit run of a string by one,
// preserving its width ("COM009" -> "COM010", "0612345678" -> "0612345679").
// A string without trailing digits gets "1" appended.
func incrementTrailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	digits := s[i:]
	if digits == "" {
		return s + "1"
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		// digit run too long to parse, fall back to appending
		return s + "1"
	}
	return s[:i] + fmt.Sprintf("%0*d", len(digits), value+1)
}

// parseAmount validates a decimal string field, recording violations on ve.
// Empty optional fields yield zero.
func parseAmount(ve *apperror.ValidationError, field, value string, required bool) decimal.Decimal {
	if value == "" {
		if required {
			ve.Add(field, "required")
		}
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		ve.Add(field, "must be a valid number")
		return decimal.Zero
	}
	if d.IsNegative() {
		ve.Add(field, "must not be negative")
	}
	return d
}
