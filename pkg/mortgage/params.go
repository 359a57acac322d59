// Package mortgage computes loan payment breakdowns and amortization schedules.
//
// Compute and ScheduleGenerator.Generate are pure: they never reject input.
// Degenerate parameters (a zero rate, a zero term) flow through the arithmetic
// and surface as NaN, Inf or a one-entry schedule. Callers that want explicit
// failures apply a Gate before computing or call Check.
package mortgage

import (
	"math"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// LoanParameters describes one loan to evaluate.
type LoanParameters struct {
	// Principal is the financed amount, i.e. price minus down payment.
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         float64 `json:"termYears"`
	// PaymentsPerYear defaults to 12 when left at zero.
	PaymentsPerYear    int     `json:"paymentsPerYear"`
	MonthlyPropertyTax float64 `json:"monthlyPropertyTax"`
	MonthlyInsurance   float64 `json:"monthlyInsurance"`
	// SimpleMode excludes tax and insurance from TotalMonthlyPayment.
	SimpleMode bool `json:"simpleMode"`
}

// Frequency returns PaymentsPerYear with the default applied.
func (p LoanParameters) Frequency() int {
	if p.PaymentsPerYear == 0 {
		return constants.DefaultPaymentsPerYear
	}
	return p.PaymentsPerYear
}

// PeriodicRate is the annual rate divided across the payments in a year.
func (p LoanParameters) PeriodicRate() float64 {
	return mathutil.PercentToRate(p.AnnualRatePercent, p.Frequency())
}

// TotalPeriods is the nominal number of payments over the term.
func (p LoanParameters) TotalPeriods() float64 {
	return p.TermYears * float64(p.Frequency())
}

// PaymentBreakdown is a single-period snapshot of a payment.
type PaymentBreakdown struct {
	// RawPayment is the unrounded principal-and-interest payment.
	RawPayment float64 `json:"rawPayment"`
	// MonthlyPayment is RawPayment rounded down to a whole unit.
	MonthlyPayment      float64 `json:"monthlyPayment"`
	TotalMonthlyPayment float64 `json:"totalMonthlyPayment"`
	// MonthlyInterest and MonthlyPrincipal split the first payment and are
	// based on the original principal.
	MonthlyInterest                   float64 `json:"monthlyInterest"`
	MonthlyPrincipal                  float64 `json:"monthlyPrincipal"`
	RemainingBalanceAfterFirstPayment float64 `json:"remainingBalanceAfterFirstPayment"`
	LifetimeTotal                     float64 `json:"lifetimeTotal"`
}

// Finite reports whether every field of the breakdown is a real number.
func (b PaymentBreakdown) Finite() bool {
	for _, v := range []float64{
		b.RawPayment, b.MonthlyPayment, b.TotalMonthlyPayment, b.MonthlyInterest,
		b.MonthlyPrincipal, b.RemainingBalanceAfterFirstPayment, b.LifetimeTotal,
	} {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}

// AmortizationEntry is one period of an amortization schedule.
type AmortizationEntry struct {
	PaymentAmount       float64   `json:"paymentAmount"`
	PrincipalPortion    float64   `json:"principalPortion"`
	InterestPortion     float64   `json:"interestPortion"`
	RemainingBalance    float64   `json:"remainingBalance"`
	CumulativeInterest  float64   `json:"cumulativeInterest"`
	CumulativePrincipal float64   `json:"cumulativePrincipal"`
	PaymentDate         time.Time `json:"paymentDate"`
}

// AmortizationSchedule is the ordered payoff series. It holds one entry more
// than the nominal payment count: the seed entry followed by one entry per
// period.
type AmortizationSchedule []AmortizationEntry

// Last returns the final entry, if any.
func (s AmortizationSchedule) Last() (AmortizationEntry, bool) {
	if len(s) == 0 {
		return AmortizationEntry{}, false
	}
	return s[len(s)-1], true
}

// iterations is the number of entries generated after the seed.
func iterations(totalPeriods float64) int {
	if math.IsNaN(totalPeriods) || totalPeriods <= 0 || totalPeriods > math.MaxInt32 {
		return 0
	}
	return int(math.Ceil(totalPeriods))
}
