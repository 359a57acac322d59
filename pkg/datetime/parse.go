// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// DateLayout is the format expected in config files and API requests and is
// also the output date format.
const DateLayout = constants.DateLayout

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDateOr parses a DateLayout date, returning fallback truncated to the
// day when the string is empty.
func ParseDateOr(date string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return Day(fallback), nil
	}
	return time.Parse(DateLayout, trimmed)
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AdvanceMonths returns t moved by the given number of calendar months.
// Day overflow normalizes forward, so Jan 31 plus one month is Mar 2 or 3.
func AdvanceMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
