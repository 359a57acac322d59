package calculator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/pkg/format"
)

// Amount is a whole-unit currency amount as a user typed it, e.g. "300,000".
// It decodes from either a JSON string or a JSON number.
type Amount string

// Value parses the amount, treating anything unparseable as zero.
func (a Amount) Value() float64 {
	return float64(format.ParseGrouped(string(a)))
}

// Grouped returns the amount with thousands separators.
func (a Amount) Grouped() string {
	return format.FormatGrouped(string(a))
}

// UnmarshalJSON accepts strings and numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*a = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("amount must be a string or number: %w", err)
	}
	// Numbers are not typed text, so a sign is meaningful and cannot be
	// stripped like other non-digits.
	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return fmt.Errorf("%w: amount %d must not be negative", ErrInvalidRequest, i)
		}
		*a = Amount(strconv.FormatInt(i, 10))
		return nil
	}
	// Fractional units are dropped rather than folded into the digits.
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("amount %s out of range: %w", n, err)
	}
	if f < 0 {
		return fmt.Errorf("%w: amount %s must not be negative", ErrInvalidRequest, n)
	}
	*a = Amount(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
	return nil
}

// Request is one loan as a form, config file or API client supplies it.
type Request struct {
	Name               string  `json:"name,omitempty"`
	Price              Amount  `json:"price"`
	DownPayment        Amount  `json:"downPayment"`
	AnnualRatePercent  float64 `json:"annualRatePercent"`
	TermYears          float64 `json:"termYears"`
	PaymentsPerYear    int     `json:"paymentsPerYear,omitempty"`
	MonthlyPropertyTax float64 `json:"monthlyPropertyTax,omitempty"`
	MonthlyInsurance   float64 `json:"monthlyInsurance,omitempty"`
	SimpleMode         bool    `json:"simpleMode,omitempty"`
	// StartDate is the first payment date (YYYY-MM-DD); empty means today.
	StartDate string `json:"startDate,omitempty"`
}
