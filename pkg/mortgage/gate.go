package mortgage

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

// ErrGateRejected is matched by every GateError.
var ErrGateRejected = errors.New("loan parameters rejected")

// GateError reports one parameter that failed the recalculation gate.
type GateError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrGateRejected.
func (e *GateError) Unwrap() error {
	return ErrGateRejected
}

// Gate holds the preconditions a host checks before invoking the engine.
type Gate struct {
	MaxRatePercent float64
	MaxTermYears   float64
}

// DefaultGate returns the gate used by the CLI and HTTP hosts.
func DefaultGate() Gate {
	return Gate{
		MaxRatePercent: constants.MaxAnnualRatePercent,
		MaxTermYears:   constants.MaxTermYears,
	}
}

// Validate checks the raw loan inputs. All violations are returned joined;
// nil means the engine can be invoked. NaN values always fail.
func (g Gate) Validate(price, downPayment, annualRatePercent, termYears float64) error {
	var errs []error

	if !(downPayment > 0) {
		errs = append(errs, &GateError{Field: "downPayment", Value: downPayment, Reason: "must be greater than zero"})
	}
	if !(downPayment < price) {
		errs = append(errs, &GateError{Field: "downPayment", Value: downPayment,
			Reason: fmt.Sprintf("must be less than price %v", price)})
	} else if principal := price - downPayment; !(principal > 0) || math.IsInf(principal, 0) {
		errs = append(errs, &GateError{Field: "principal", Value: principal, Reason: "must be a positive amount"})
	}
	if !(annualRatePercent > 0 && annualRatePercent <= g.MaxRatePercent) {
		errs = append(errs, &GateError{Field: "annualRatePercent", Value: annualRatePercent,
			Reason: fmt.Sprintf("must be in (0, %v]", g.MaxRatePercent)})
	}
	if !(termYears > 0 && termYears <= g.MaxTermYears) {
		errs = append(errs, &GateError{Field: "termYears", Value: termYears,
			Reason: fmt.Sprintf("must be in (0, %v]", g.MaxTermYears)})
	}

	return errors.Join(errs...)
}

// CalculationErrorKind classifies inputs the payment formula cannot handle.
type CalculationErrorKind int

const (
	// DivisionByZero means the growth factor is 1, e.g. a zero rate.
	DivisionByZero CalculationErrorKind = iota + 1
	// NonPositiveTerm means the loan has no payment periods.
	NonPositiveTerm
	// NonPositivePrincipal means there is nothing to finance.
	NonPositivePrincipal
)

func (k CalculationErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "division by zero"
	case NonPositiveTerm:
		return "non-positive term"
	case NonPositivePrincipal:
		return "non-positive principal"
	default:
		return "unknown"
	}
}

// CalculationError explains why Compute would return a degenerate breakdown.
type CalculationError struct {
	Kind   CalculationErrorKind
	Detail string
}

func (e *CalculationError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is matches any CalculationError of the same kind.
func (e *CalculationError) Is(target error) bool {
	var other *CalculationError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// Sentinel values for errors.Is.
var (
	ErrDivisionByZero       = &CalculationError{Kind: DivisionByZero}
	ErrNonPositiveTerm      = &CalculationError{Kind: NonPositiveTerm}
	ErrNonPositivePrincipal = &CalculationError{Kind: NonPositivePrincipal}
)

// Check reports the first reason Compute(p) would produce a non-finite or
// meaningless result, or nil. It does not change what Compute returns.
func Check(p LoanParameters) error {
	if !(p.Principal > 0) {
		return &CalculationError{Kind: NonPositivePrincipal, Detail: fmt.Sprintf("principal %v", p.Principal)}
	}
	if periods := p.TotalPeriods(); !(periods > 0) {
		return &CalculationError{Kind: NonPositiveTerm, Detail: fmt.Sprintf("%v periods", periods)}
	}
	if growth := math.Pow(1+p.PeriodicRate(), p.TotalPeriods()); growth == 1 || math.IsNaN(growth) {
		return &CalculationError{Kind: DivisionByZero, Detail: fmt.Sprintf("annual rate %v%%", p.AnnualRatePercent)}
	}
	return nil
}
