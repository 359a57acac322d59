// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []calculator.Result, includeSchedule bool) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		params := result.Parameters
		b := result.Breakdown

		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		_, _ = p.Fprintf(w, "Principal           | $%.2f\n", params.Principal)
		_, _ = p.Fprintf(w, "Rate                | %.3f%% (%d payments/year, %v years)\n",
			params.AnnualRatePercent, params.Frequency(), params.TermYears)
		_, _ = p.Fprintf(w, "Payment (P&I)       | $%.2f\n", b.MonthlyPayment)
		_, _ = p.Fprintf(w, "Total per period    | $%.2f\n", b.TotalMonthlyPayment)
		_, _ = p.Fprintf(w, "First interest      | $%.2f\n", b.MonthlyInterest)
		_, _ = p.Fprintf(w, "First principal     | $%.2f\n", b.MonthlyPrincipal)
		_, _ = p.Fprintf(w, "Balance after first | $%.2f\n", b.RemainingBalanceAfterFirstPayment)
		_, _ = p.Fprintf(w, "Lifetime total      | $%.2f\n", b.LifetimeTotal)

		if includeSchedule && len(result.Schedule) > 0 {
			_, _ = p.Fprintf(w, "Total interest      | $%.2f\n", result.TotalInterest())
			_, _ = fmt.Fprintf(w, "\n#    | Date       | Payment | Principal | Interest | Balance\n")
			_, _ = fmt.Fprintf(w, "_    | __________ | _______ | _________ | ________ | _______\n")
			for n, entry := range result.Schedule {
				_, _ = p.Fprintf(w, "%-4d | %s | $%.2f | $%.2f | $%.2f | $%.2f\n",
					n+1, datetime.FormatDate(entry.PaymentDate), entry.PaymentAmount,
					entry.PrincipalPortion, entry.InterestPortion, entry.RemainingBalance)
			}
		}

		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

var summaryHeader = []string{
	"scenario", "principal", "annualRatePercent", "paymentsPerYear", "termYears",
	"monthlyPayment", "totalMonthlyPayment", "monthlyInterest", "monthlyPrincipal",
	"remainingBalanceAfterFirstPayment", "lifetimeTotal",
}

var scheduleHeader = []string{
	"scenario", "period", "date", "payment", "principal", "interest", "balance",
	"cumulativePrincipal", "cumulativeInterest",
}

// CsvFormat writes comma-separated values: one summary row per result, or one
// row per schedule entry when includeSchedule is set.
func CsvFormat(w io.Writer, results []calculator.Result, includeSchedule bool) error {
	cw := csv.NewWriter(w)

	if includeSchedule {
		if err := cw.Write(scheduleHeader); err != nil {
			return err
		}
		for _, result := range results {
			for n, entry := range result.Schedule {
				row := []string{
					result.Name,
					strconv.Itoa(n + 1),
					datetime.FormatDate(entry.PaymentDate),
					money(entry.PaymentAmount),
					money(entry.PrincipalPortion),
					money(entry.InterestPortion),
					money(entry.RemainingBalance),
					money(entry.CumulativePrincipal),
					money(entry.CumulativeInterest),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	} else {
		if err := cw.Write(summaryHeader); err != nil {
			return err
		}
		for _, result := range results {
			params := result.Parameters
			b := result.Breakdown
			row := []string{
				result.Name,
				money(params.Principal),
				strconv.FormatFloat(params.AnnualRatePercent, 'f', -1, 64),
				strconv.Itoa(params.Frequency()),
				strconv.FormatFloat(params.TermYears, 'f', -1, 64),
				money(b.MonthlyPayment),
				money(b.TotalMonthlyPayment),
				money(b.MonthlyInterest),
				money(b.MonthlyPrincipal),
				money(b.RemainingBalanceAfterFirstPayment),
				money(b.LifetimeTotal),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
