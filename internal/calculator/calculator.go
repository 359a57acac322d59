// Package calculator turns raw loan requests into payment breakdowns and
// amortization schedules.
//
// It plays the role of the form layer in front of the mortgage engine:
// amounts are normalized from grouped strings, the recalculation gate is
// applied, and only then is the engine invoked.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/datetime"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRequest marks requests rejected before reaching the gate.
var ErrInvalidRequest = errors.New("invalid loan request")

// Result holds everything computed for one request.
type Result struct {
	Name       string
	Request    Request
	Parameters mortgage.LoanParameters
	StartDate  time.Time
	Breakdown  mortgage.PaymentBreakdown
	// Schedule is nil when only the breakdown was requested.
	Schedule mortgage.AmortizationSchedule
}

// TotalInterest returns the cumulative interest of the schedule, or zero when
// no schedule was generated.
func (r Result) TotalInterest() float64 {
	last, ok := r.Schedule.Last()
	if !ok {
		return 0
	}
	return last.CumulativeInterest
}

// Calculator validates requests and runs the mortgage engine.
type Calculator struct {
	logger    *zap.Logger
	gate      mortgage.Gate
	generator *mortgage.ScheduleGenerator
	now       func() time.Time
}

// New creates a Calculator that rejects requests failing gate.
func New(logger *zap.Logger, gate mortgage.Gate) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		logger:    logger,
		gate:      gate,
		generator: mortgage.NewScheduleGenerator(logger),
		now:       time.Now,
	}
}

// Parameters normalizes req and applies the gate, returning the engine input
// and the first payment date.
func (c *Calculator) Parameters(req Request) (mortgage.LoanParameters, time.Time, error) {
	price := req.Price.Value()
	down := req.DownPayment.Value()

	ppy := req.PaymentsPerYear
	if ppy == 0 {
		ppy = constants.DefaultPaymentsPerYear
	}
	if ppy < 1 || ppy > constants.MaxPaymentsPerYear {
		return mortgage.LoanParameters{}, time.Time{},
			fmt.Errorf("%w: paymentsPerYear %d must be in [1, %d]", ErrInvalidRequest, ppy, constants.MaxPaymentsPerYear)
	}
	if req.MonthlyPropertyTax < 0 || req.MonthlyInsurance < 0 {
		return mortgage.LoanParameters{}, time.Time{},
			fmt.Errorf("%w: tax and insurance must not be negative", ErrInvalidRequest)
	}

	start, err := datetime.ParseDateOr(req.StartDate, c.now())
	if err != nil {
		return mortgage.LoanParameters{}, time.Time{},
			fmt.Errorf("%w: startDate %q: %v", ErrInvalidRequest, req.StartDate, err)
	}

	if err := c.gate.Validate(price, down, req.AnnualRatePercent, req.TermYears); err != nil {
		return mortgage.LoanParameters{}, time.Time{}, err
	}

	return mortgage.LoanParameters{
		Principal:          price - down,
		AnnualRatePercent:  req.AnnualRatePercent,
		TermYears:          req.TermYears,
		PaymentsPerYear:    ppy,
		MonthlyPropertyTax: req.MonthlyPropertyTax,
		MonthlyInsurance:   req.MonthlyInsurance,
		SimpleMode:         req.SimpleMode,
	}, start, nil
}

// Payment computes only the payment breakdown for req.
func (c *Calculator) Payment(req Request) (Result, error) {
	params, start, err := c.Parameters(req)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Name:       req.Name,
		Request:    req,
		Parameters: params,
		StartDate:  start,
		Breakdown:  mortgage.Compute(params),
	}, nil
}

// Schedule computes the payment breakdown and full schedule for req.
func (c *Calculator) Schedule(req Request) (Result, error) {
	params, start, err := c.Parameters(req)
	if err != nil {
		return Result{}, err
	}
	breakdown, schedule := c.generator.Amortize(params, start)

	c.logger.Debug("computed amortization schedule",
		zap.String("op", "calculator.Schedule"),
		zap.String("name", req.Name),
		zap.Float64("principal", params.Principal),
		zap.Float64("monthlyPayment", breakdown.MonthlyPayment),
		zap.Int("entries", len(schedule)),
	)

	return Result{
		Name:       req.Name,
		Request:    req,
		Parameters: params,
		StartDate:  start,
		Breakdown:  breakdown,
		Schedule:   schedule,
	}, nil
}

// CalculateAll evaluates independent requests concurrently, at most limit at a
// time, and returns results in request order. The first failure cancels the
// remaining work and is returned annotated with the request it came from.
func (c *Calculator) CalculateAll(ctx context.Context, reqs []Request, withSchedule bool, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = constants.DefaultCompareConcurrency
	}

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var (
				result Result
				err    error
			)
			if withSchedule {
				result, err = c.Schedule(req)
			} else {
				result, err = c.Payment(req)
			}
			if err != nil {
				return fmt.Errorf("scenario %s: %w", label(i, req), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.logger.Warn("scenario evaluation failed",
			zap.String("op", "calculator.CalculateAll"),
			zap.Int("scenarios", len(reqs)),
			zap.Error(err),
		)
		return nil, err
	}
	return results, nil
}

func label(i int, req Request) string {
	if req.Name != "" {
		return fmt.Sprintf("%q", req.Name)
	}
	return fmt.Sprintf("#%d", i+1)
}
