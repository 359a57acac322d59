package mortgage

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
)

var scheduleStart = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func amortize(t *testing.T, p LoanParameters) (PaymentBreakdown, AmortizationSchedule) {
	t.Helper()
	return NewScheduleGenerator(zap.NewNop()).Amortize(p, scheduleStart)
}

func TestGenerateScenarioA(t *testing.T) {
	b, schedule := amortize(t, scenarioA())

	if len(schedule) != 361 {
		t.Fatalf("Generate() length = %d, expected 361", len(schedule))
	}
	if b.MonthlyPayment <= 0 {
		t.Errorf("MonthlyPayment = %v, expected > 0", b.MonthlyPayment)
	}

	last, _ := schedule.Last()
	if last.RemainingBalance != 0 {
		t.Errorf("last RemainingBalance = %v, expected exactly 0", last.RemainingBalance)
	}

	seed := schedule[0]
	if seed.PaymentAmount != 1288 || seed.RemainingBalance != 239712 || !seed.PaymentDate.Equal(scheduleStart) {
		t.Errorf("seed entry = %+v, expected payment 1288, balance 239712, date %v", seed, scheduleStart)
	}
	if seed.CumulativeInterest != seed.InterestPortion || seed.CumulativePrincipal != seed.PrincipalPortion {
		t.Errorf("seed cumulative fields must start at the period-1 values: %+v", seed)
	}

	second := schedule[1]
	expected := AmortizationEntry{
		PaymentAmount:       1288,
		PrincipalPortion:    289.2,
		InterestPortion:     998.8,
		RemainingBalance:    239424,
		CumulativeInterest:  1998.8,
		CumulativePrincipal: 577.2,
	}
	assertEntry(t, "second", second, expected)
	if got := second.PaymentDate.Format("2006-01-02"); got != "2025-02-15" {
		t.Errorf("second PaymentDate = %s, expected 2025-02-15", got)
	}

	assertEntry(t, "penultimate", schedule[359], AmortizationEntry{
		PaymentAmount:       1288,
		PrincipalPortion:    1273.53,
		InterestPortion:     14.47,
		RemainingBalance:    2204.74,
		CumulativePrincipal: 238780.79,
		CumulativeInterest:  224899.21,
	})
	assertEntry(t, "last", last, AmortizationEntry{
		PaymentAmount:       2219.21,
		PrincipalPortion:    2210.02,
		InterestPortion:     9.19,
		RemainingBalance:    0,
		CumulativePrincipal: 240990.81,
		CumulativeInterest:  224908.40,
	})
	if got := last.PaymentDate.Format("2006-01-02"); got != "2055-01-15" {
		t.Errorf("last PaymentDate = %s, expected 2055-01-15", got)
	}
}

func TestGenerateSingleYearTerm(t *testing.T) {
	p := scenarioA()
	p.TermYears = 1

	_, schedule := amortize(t, p)
	if len(schedule) != 13 {
		t.Fatalf("Generate() length = %d, expected 13", len(schedule))
	}
	last, _ := schedule.Last()
	if last.RemainingBalance != 0 {
		t.Errorf("last RemainingBalance = %v, expected 0", last.RemainingBalance)
	}
}

func TestGenerateProperties(t *testing.T) {
	tests := []struct {
		name   string
		params LoanParameters
	}{
		{"30-year monthly", scenarioA()},
		{"15-year monthly", LoanParameters{Principal: 350000, AnnualRatePercent: 6.25, TermYears: 15, PaymentsPerYear: 12}},
		{"Single year", LoanParameters{Principal: 240000, AnnualRatePercent: 5, TermYears: 1, PaymentsPerYear: 12}},
		{"Maximal rate", LoanParameters{Principal: 240000, AnnualRatePercent: 20, TermYears: 30, PaymentsPerYear: 12}},
		{"Minimal rate", LoanParameters{Principal: 500000, AnnualRatePercent: 0.25, TermYears: 30, PaymentsPerYear: 12}},
		{"Biweekly", LoanParameters{Principal: 240000, AnnualRatePercent: 5, TermYears: 30, PaymentsPerYear: 26}},
		{"Weekly", LoanParameters{Principal: 800000, AnnualRatePercent: 7.5, TermYears: 20, PaymentsPerYear: 52}},
		{"Quarterly", LoanParameters{Principal: 120000, AnnualRatePercent: 4, TermYears: 10, PaymentsPerYear: 4}},
		{"Annual", LoanParameters{Principal: 240000, AnnualRatePercent: 5, TermYears: 30, PaymentsPerYear: 1}},
		{"Fractional principal", LoanParameters{Principal: 187654.32, AnnualRatePercent: 3.875, TermYears: 25, PaymentsPerYear: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, schedule := amortize(t, tt.params)

			wantLen := int(tt.params.TotalPeriods()) + 1
			if len(schedule) != wantLen {
				t.Fatalf("length = %d, expected %d", len(schedule), wantLen)
			}

			first := schedule[0]
			last, _ := schedule.Last()
			if last.RemainingBalance != 0 {
				t.Errorf("last RemainingBalance = %v, expected exactly 0", last.RemainingBalance)
			}

			for i := 1; i < len(schedule); i++ {
				if schedule[i].CumulativePrincipal < schedule[i-1].CumulativePrincipal {
					t.Fatalf("CumulativePrincipal decreased at entry %d: %v -> %v",
						i, schedule[i-1].CumulativePrincipal, schedule[i].CumulativePrincipal)
				}
			}

			// The seed duplicates period one, so the series reconstructs the
			// principal plus the interest difference between its first and last
			// entries.
			reconstructed := last.CumulativePrincipal - (first.InterestPortion - last.InterestPortion)
			tolerance := 0.01 * float64(len(schedule))
			if math.Abs(reconstructed-tt.params.Principal) > tolerance {
				t.Errorf("reconstructed principal = %.2f, expected %.2f within %.2f",
					reconstructed, tt.params.Principal, tolerance)
			}

			sum := 0.0
			for _, entry := range schedule {
				sum += entry.PrincipalPortion
			}
			if math.Abs(sum-last.CumulativePrincipal) > 1e-6 {
				t.Errorf("sum of principal portions = %v, last cumulative = %v", sum, last.CumulativePrincipal)
			}
		})
	}
}

func TestGenerateRoundsEveryPeriodToCents(t *testing.T) {
	_, schedule := amortize(t, LoanParameters{Principal: 187654.32, AnnualRatePercent: 3.875, TermYears: 25, PaymentsPerYear: 12})

	for i, entry := range schedule[1:] {
		for name, v := range map[string]float64{"interest": entry.InterestPortion, "principal": entry.PrincipalPortion} {
			if cents := v * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
				t.Fatalf("entry %d %s = %v is not rounded to cents", i+1, name, v)
			}
		}
	}
}

func TestGenerateZeroPeriodsYieldsSeedOnly(t *testing.T) {
	p := scenarioA()
	p.TermYears = 0

	_, schedule := amortize(t, p)
	if len(schedule) != 1 {
		t.Fatalf("Generate() length = %d, expected 1", len(schedule))
	}
	if !schedule[0].PaymentDate.Equal(scheduleStart) {
		t.Errorf("seed PaymentDate = %v, expected %v", schedule[0].PaymentDate, scheduleStart)
	}
}

func TestGenerateFractionalPeriodsRoundUp(t *testing.T) {
	p := LoanParameters{Principal: 100000, AnnualRatePercent: 6, TermYears: 2.5, PaymentsPerYear: 1}

	b, schedule := amortize(t, p)
	if !b.Finite() {
		t.Fatalf("Compute() = %+v, expected finite breakdown", b)
	}
	if len(schedule) != 4 {
		t.Fatalf("Generate() length = %d, expected 4 (seed + ceil(2.5))", len(schedule))
	}

	last, _ := schedule.Last()
	if last.RemainingBalance != 0 {
		t.Errorf("last RemainingBalance = %v, expected the final correction to reach 0", last.RemainingBalance)
	}
	if want := scheduleStart.AddDate(0, 3, 0); !last.PaymentDate.Equal(want) {
		t.Errorf("last PaymentDate = %v, expected %v", last.PaymentDate, want)
	}
}

func TestGenerateNonFiniteSeedPropagates(t *testing.T) {
	p := scenarioA()
	p.AnnualRatePercent = 0

	_, schedule := amortize(t, p)
	if len(schedule) != 361 {
		t.Fatalf("Generate() length = %d, expected 361", len(schedule))
	}
	for i, entry := range schedule[:len(schedule)-1] {
		if !math.IsNaN(entry.PaymentAmount) {
			t.Fatalf("entry %d PaymentAmount = %v, expected NaN", i, entry.PaymentAmount)
		}
	}
	last, _ := schedule.Last()
	if last.RemainingBalance != 0 {
		t.Errorf("last RemainingBalance = %v, expected 0 even for degenerate input", last.RemainingBalance)
	}
	if !math.IsNaN(last.CumulativePrincipal) {
		t.Errorf("last CumulativePrincipal = %v, expected NaN", last.CumulativePrincipal)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewScheduleGenerator(nil)
	b1, s1 := g.Amortize(scenarioA(), scheduleStart)
	b2, s2 := g.Amortize(scenarioA(), scheduleStart)

	if b1 != b2 {
		t.Fatalf("breakdowns differ: %+v vs %+v", b1, b2)
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, s1[i], s2[i])
		}
	}
}

func TestLastOnEmptySchedule(t *testing.T) {
	if _, ok := AmortizationSchedule(nil).Last(); ok {
		t.Error("Last() on empty schedule reported an entry")
	}
}

func assertEntry(t *testing.T, label string, got, expected AmortizationEntry) {
	t.Helper()
	checks := []struct {
		field     string
		got, want float64
	}{
		{"PaymentAmount", got.PaymentAmount, expected.PaymentAmount},
		{"PrincipalPortion", got.PrincipalPortion, expected.PrincipalPortion},
		{"InterestPortion", got.InterestPortion, expected.InterestPortion},
		{"RemainingBalance", got.RemainingBalance, expected.RemainingBalance},
		{"CumulativePrincipal", got.CumulativePrincipal, expected.CumulativePrincipal},
		{"CumulativeInterest", got.CumulativeInterest, expected.CumulativeInterest},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.005 {
			t.Errorf("%s entry %s = %.4f, expected %.2f", label, c.field, c.got, c.want)
		}
	}
}
