// Package format converts amounts between user-facing grouped strings and
// numbers.
//
// Grouped amounts are whole currency units only: every non-digit, including a
// decimal point, is discarded before grouping or parsing.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// FormatGrouped strips every non-digit from raw and inserts thousands
// separators every three digits from the right (e.g. "$1234567" -> "1,234,567").
// Input without digits yields an empty string.
func FormatGrouped(raw string) string {
	return group(digitsOnly(raw))
}

// ParseGrouped removes separators from a grouped amount and parses the digits
// as an integer. Empty, digitless or out-of-range input yields 0.
func ParseGrouped(formatted string) int64 {
	digits := digitsOnly(formatted)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%v", amount)
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}
	return group(parts[0]) + "." + decPart
}

func digitsOnly(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			builder.WriteByte(s[i])
		}
	}
	return builder.String()
}

// group expects a string of ASCII digits.
func group(digits string) string {
	if len(digits) <= constants.GroupSize {
		return digits
	}
	var builder strings.Builder
	builder.Grow(len(digits) + len(digits)/constants.GroupSize)
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%constants.GroupSize == 0 {
			builder.WriteByte(constants.GroupSeparator)
		}
		builder.WriteByte(digits[i])
	}
	return builder.String()
}
