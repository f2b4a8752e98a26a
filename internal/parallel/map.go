package parallel

import (
	"context"

	apperrors "github.com/agbru/tancalc/internal/errors"
)

// WithPool creates a pool of the given size, passes it to fn and shuts it
// down before returning, whether fn returns normally, with an error, or panics.
func WithPool(factory Factory, size int, fn func(Pool) error) error {
	if size <= 0 {
		return apperrors.ValidationError{Field: "size", Message: "pool size must be positive"}
	}
	pool := factory(size)
	defer pool.Shutdown()
	return fn(pool)
}

// Map applies fn to every element of in on pool, one task per element, and
// returns the outputs in input order. It blocks until every submitted task
// has finished.
//
// A panicking task is recovered into a *apperrors.WorkerFaultError. If any
// task faults, Map returns a nil slice and the first fault; partial output is
// never returned. If ctx is done before all tasks are submitted, the
// remaining elements are skipped and ctx.Err() is returned.
func Map[I, O any](ctx context.Context, pool Pool, in []I, fn func(I) O) ([]O, error) {
	out := make([]O, len(in))
	var faults ErrorCollector

	for i := range in {
		if ctx.Err() != nil {
			break
		}
		idx := i
		pool.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					fault := &apperrors.WorkerFaultError{Index: idx, Value: r}
					faults.SetError(fault)
					err = fault
				}
			}()
			out[idx] = fn(in[idx])
			return nil
		})
	}

	waitErr := pool.Wait()
	if err := faults.Err(); err != nil {
		return nil, err
	}
	if waitErr != nil {
		return nil, waitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
