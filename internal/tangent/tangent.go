// Package tangent computes tan(x°) over number sequences, either on the
// calling goroutine or fanned out across a bounded worker pool.
package tangent

import (
	"context"
	"errors"
	"math"

	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/logging"
	"github.com/agbru/tancalc/internal/parallel"
)

const degreesToRadians = math.Pi / 180

// Of returns the tangent of x degrees.
func Of(x float64) float64 {
	return math.Tan(x * degreesToRadians)
}

// Sequential maps Of over values on the calling goroutine.
func Sequential(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Of(v)
	}
	return out
}

// Calculator runs the parallel tangent map. It holds no per-call state and is
// safe for concurrent use; every Compute call gets its own pool.
type Calculator struct {
	log     logging.Logger
	factory parallel.Factory
	fn      func(float64) float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithPoolFactory selects the worker pool backend. The default is
// parallel.NewGroupPool.
func WithPoolFactory(f parallel.Factory) Option {
	return func(c *Calculator) { c.factory = f }
}

// WithFunc replaces the per-element function. It exists so tests can inject
// faults; production callers keep the default Of.
func WithFunc(fn func(float64) float64) Option {
	return func(c *Calculator) { c.fn = fn }
}

// New creates a Calculator that logs through log.
func New(log logging.Logger, opts ...Option) *Calculator {
	c := &Calculator{log: log, factory: parallel.NewGroupPool, fn: Of}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns Of(values[i]) for every i, computed by threadsNum workers.
// The output is aligned with the input regardless of completion order.
//
// The pool is created for this call only and shut down before Compute
// returns. The result is all-or-nothing: if any unit faults, or ctx ends
// first, Compute logs a warning and returns an empty slice with the cause.
//
// Parameters:
//   - ctx: Cancels submission of the remaining units.
//   - values: The input sequence; may be empty.
//   - threadsNum: Pool size. Must be positive.
//
// Returns:
//   - []float64: The results, or an empty slice on failure.
//   - error: A ValidationError for threadsNum <= 0, a *WorkerFaultError, or a context error.
func (c *Calculator) Compute(ctx context.Context, values []float64, threadsNum int) ([]float64, error) {
	if threadsNum <= 0 {
		return []float64{}, apperrors.ValidationError{Field: "threadsNum", Message: "worker count must be positive"}
	}

	var out []float64
	err := parallel.WithPool(c.factory, threadsNum, func(pool parallel.Pool) error {
		var err error
		out, err = parallel.Map(ctx, pool, values, c.fn)
		return err
	})
	if err != nil {
		var fault *apperrors.WorkerFaultError
		if errors.As(err, &fault) {
			c.log.Warn("worker task faulted, discarding batch",
				logging.Int("index", fault.Index),
				logging.Int("size", len(values)),
				logging.Int("threads", threadsNum),
				logging.Err(err))
		} else {
			c.log.Warn("parallel computation interrupted",
				logging.Int("size", len(values)),
				logging.Int("threads", threadsNum),
				logging.Err(err))
		}
		return []float64{}, err
	}
	return out, nil
}
