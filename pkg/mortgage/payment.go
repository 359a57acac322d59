package mortgage

import (
	"math"
)

// Compute returns the payment breakdown for a loan using the standard
// amortization formula. It never fails: a zero rate divides zero by zero and a
// zero term divides by zero, and the resulting NaN or Inf is returned as is.
func Compute(p LoanParameters) PaymentBreakdown {
	periodicRate := p.PeriodicRate()
	totalPeriods := p.TotalPeriods()

	periodInterest := p.Principal * periodicRate
	growth := math.Pow(1+periodicRate, totalPeriods)
	raw := periodInterest * growth / (growth - 1)

	total := math.Round(raw)
	if !p.SimpleMode {
		total += p.MonthlyPropertyTax + p.MonthlyInsurance
	}

	payment := math.Floor(raw)
	principal := payment - periodInterest

	return PaymentBreakdown{
		RawPayment:                        raw,
		MonthlyPayment:                    payment,
		TotalMonthlyPayment:               total,
		MonthlyInterest:                   periodInterest,
		MonthlyPrincipal:                  principal,
		RemainingBalanceAfterFirstPayment: p.Principal - principal,
		LifetimeTotal:                     total * totalPeriods,
	}
}

// CalculateInterestPayment calculates the interest accrued on a balance over
// one period.
func CalculateInterestPayment(balance, periodicRate float64) float64 {
	return balance * periodicRate
}
