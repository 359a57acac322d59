package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
)

// lastSafeDay is the latest day of month that exists in every month.
const lastSafeDay = 28

// ValidateStartDate checks that a scenario's first payment date parses and
// warns when monthly advancement will move it off its day of month.
// An empty date is valid and means "today".
func ValidateStartDate(scenarioName, startDate string) (string, error) {
	trimmed := strings.TrimSpace(startDate)
	if trimmed == "" {
		return "", nil
	}

	start, err := time.Parse(datetime.DateLayout, trimmed)
	if err != nil {
		return "", fmt.Errorf("scenario '%s' has invalid startDate %q, expected %s", scenarioName, startDate, datetime.DateLayout)
	}

	if start.Day() > lastSafeDay {
		next := datetime.AdvanceMonths(start, 1)
		return fmt.Sprintf("Scenario '%s' starts on day %d; payment dates will drift after short months (next payment %s)",
			scenarioName, start.Day(), datetime.FormatDate(next)), nil
	}

	return "", nil
}

// ValidatePaymentsPerYear checks that a payment frequency is usable. Zero
// selects the monthly default.
func ValidatePaymentsPerYear(scenarioName string, paymentsPerYear int) error {
	if paymentsPerYear == 0 {
		return nil
	}
	if paymentsPerYear < 1 || paymentsPerYear > constants.MaxPaymentsPerYear {
		return fmt.Errorf("scenario '%s' has paymentsPerYear %d, expected 1 to %d",
			scenarioName, paymentsPerYear, constants.MaxPaymentsPerYear)
	}
	return nil
}
