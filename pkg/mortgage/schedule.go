package mortgage

import (
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate builds the full schedule from the first-period values in seed.
//
// Every period re-rounds the balance, interest and principal to cents, so
// rounding drift accumulates; the last period absorbs it by paying off
// whatever balance remains, which leaves the final balance at exactly zero.
// Interest for a period accrues on the previous entry's balance.
func (g *ScheduleGenerator) Generate(seed PaymentBreakdown, annualRatePercent float64, paymentsPerYear int,
	termYears float64, startDate time.Time) AmortizationSchedule {
	params := LoanParameters{
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		PaymentsPerYear:   paymentsPerYear,
	}
	periodicRate := params.PeriodicRate()
	n := iterations(params.TotalPeriods())

	if !seed.Finite() {
		g.logger.Warn("generating schedule from non-finite seed",
			zap.String("op", "mortgage.Generate"),
			zap.Float64("monthlyPayment", seed.MonthlyPayment),
			zap.Float64("monthlyInterest", seed.MonthlyInterest),
		)
	}

	schedule := make(AmortizationSchedule, 0, n+1)
	prior := AmortizationEntry{
		PaymentAmount:       seed.MonthlyPayment,
		PrincipalPortion:    seed.MonthlyPrincipal,
		InterestPortion:     seed.MonthlyInterest,
		RemainingBalance:    seed.RemainingBalanceAfterFirstPayment,
		CumulativeInterest:  seed.MonthlyInterest,
		CumulativePrincipal: seed.MonthlyPrincipal,
		PaymentDate:         startDate,
	}
	schedule = append(schedule, prior)

	for i := 0; i < n; i++ {
		var current AmortizationEntry
		if i == n-1 {
			current.PaymentAmount = prior.PaymentAmount + (prior.RemainingBalance - prior.PrincipalPortion)
			current.RemainingBalance = 0
		} else {
			current.PaymentAmount = prior.PaymentAmount
			current.RemainingBalance = mathutil.Round(prior.RemainingBalance) - mathutil.Round(prior.PrincipalPortion)
		}
		current.InterestPortion = mathutil.Round(CalculateInterestPayment(prior.RemainingBalance, periodicRate))
		current.PrincipalPortion = mathutil.Round(current.PaymentAmount - current.InterestPortion)
		current.CumulativePrincipal = prior.CumulativePrincipal + current.PrincipalPortion
		current.CumulativeInterest = prior.CumulativeInterest + current.InterestPortion
		current.PaymentDate = datetime.AdvanceMonths(prior.PaymentDate, 1)

		schedule = append(schedule, current)
		prior = current
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "mortgage.Generate"),
		zap.Int("entries", len(schedule)),
		zap.Float64("finalPayment", prior.PaymentAmount),
	)

	return schedule
}

// Amortize computes the breakdown for p and the schedule seeded from it.
func (g *ScheduleGenerator) Amortize(p LoanParameters, startDate time.Time) (PaymentBreakdown, AmortizationSchedule) {
	breakdown := Compute(p)
	return breakdown, g.Generate(breakdown, p.AnnualRatePercent, p.Frequency(), p.TermYears, startDate)
}
