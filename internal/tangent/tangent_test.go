package tangent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/logging"
	"github.com/agbru/tancalc/internal/parallel"
	"github.com/agbru/tancalc/internal/parallel/mocks"
)

func backends() map[string]parallel.Factory {
	return map[string]parallel.Factory{
		parallel.BackendErrgroup: parallel.NewGroupPool,
		parallel.BackendPond:     parallel.NewPondPool,
	}
}

func sameBits(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func TestOf(t *testing.T) {
	t.Parallel()
	if got := Of(0); got != 0 {
		t.Errorf("Of(0) = %v, want 0", got)
	}
	if got := Of(45); math.Abs(got-1) > 1e-15 {
		t.Errorf("Of(45) = %v, want ~1", got)
	}
	got := Of(90)
	if math.IsInf(got, 0) || got < 1e15 {
		t.Errorf("Of(90) = %v, want a large finite value", got)
	}
	if got := Of(-45); math.Abs(got+1) > 1e-15 {
		t.Errorf("Of(-45) = %v, want ~-1", got)
	}
}

func TestSequential(t *testing.T) {
	t.Parallel()
	in := []float64{0, 30, 60}
	got := Sequential(in)
	for i, v := range in {
		if !sameBits(got[i], math.Tan(v*math.Pi/180)) {
			t.Errorf("Sequential[%d] = %v", i, got[i])
		}
	}
	if out := Sequential(nil); out == nil || len(out) != 0 {
		t.Errorf("Sequential(nil) = %v, want empty non-nil", out)
	}
}

func TestComputeKnownValues(t *testing.T) {
	t.Parallel()
	for name, factory := range backends() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			calc := New(logging.NewNopLogger(), WithPoolFactory(factory))
			got, err := calc.Compute(context.Background(), []float64{0.0, 45.0, 90.0}, 2)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("len = %d, want 3", len(got))
			}
			if got[0] != 0 {
				t.Errorf("got[0] = %v, want 0", got[0])
			}
			if !sameBits(got[1], Of(45)) {
				t.Errorf("got[1] = %v, want %v", got[1], Of(45))
			}
			if !sameBits(got[2], Of(90)) || math.IsInf(got[2], 0) {
				t.Errorf("got[2] = %v, want %v", got[2], Of(90))
			}
		})
	}
}

// TestComputeInvariantToWorkerCount checks that the result does not depend
// on how many workers were used.
func TestComputeInvariantToWorkerCount(t *testing.T) {
	t.Parallel()
	in := make([]float64, 257)
	for i := range in {
		in[i] = float64(i*7%360) - 180
	}
	want := Sequential(in)

	for name, factory := range backends() {
		for _, threads := range []int{1, 2, len(in), len(in) + 10} {
			factory, threads := factory, threads
			t.Run(fmt.Sprintf("%s/threads=%d", name, threads), func(t *testing.T) {
				t.Parallel()
				got, err := New(logging.NewNopLogger(), WithPoolFactory(factory)).Compute(context.Background(), in, threads)
				if err != nil {
					t.Fatalf("Compute() error = %v", err)
				}
				if len(got) != len(in) {
					t.Fatalf("len = %d, want %d", len(got), len(in))
				}
				for i := range want {
					if !sameBits(got[i], want[i]) {
						t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
					}
				}
			})
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	t.Parallel()
	calc := New(logging.NewNopLogger())
	for _, threads := range []int{1, 10} {
		got, err := calc.Compute(context.Background(), []float64{}, threads)
		if err != nil || got == nil || len(got) != 0 {
			t.Errorf("Compute([], %d) = %v, %v; want empty", threads, got, err)
		}
	}
}

func TestComputeRejectsNonPositiveThreads(t *testing.T) {
	t.Parallel()
	created := false
	calc := New(logging.NewNopLogger(), WithPoolFactory(func(size int) parallel.Pool {
		created = true
		return parallel.NewGroupPool(size)
	}))
	for _, threads := range []int{0, -3} {
		got, err := calc.Compute(context.Background(), []float64{1, 2}, threads)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("Compute(threads=%d) error = %v, want ValidationError", threads, err)
		}
		if len(got) != 0 {
			t.Errorf("Compute(threads=%d) = %v, want empty", threads, got)
		}
	}
	if created {
		t.Error("no pool should be created for an invalid worker count")
	}
}

// TestComputeFaultReturnsEmptyAndShutsDownPool injects a panicking unit and
// verifies the all-or-nothing result and that the pool was released.
func TestComputeFaultReturnsEmptyAndShutsDownPool(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pool := mocks.NewMockPool(ctrl)
	pool.EXPECT().Go(gomock.Any()).Do(func(task func() error) { _ = task() }).Times(3)
	pool.EXPECT().Wait().Return(nil).Times(1)
	pool.EXPECT().Shutdown().Times(1)

	var buf bytes.Buffer
	calc := New(logging.NewLogger(&buf, "tangent"),
		WithPoolFactory(func(int) parallel.Pool { return pool }),
		WithFunc(func(x float64) float64 {
			if x == 45 {
				panic("simulated worker fault")
			}
			return Of(x)
		}),
	)

	got, err := calc.Compute(context.Background(), []float64{0, 45, 90}, 2)
	if len(got) != 0 {
		t.Errorf("got %v, want empty on fault", got)
	}
	var fault *apperrors.WorkerFaultError
	if !errors.As(err, &fault) || fault.Index != 1 {
		t.Fatalf("err = %v, want WorkerFaultError at index 1", err)
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected a warning to be logged, got: %s", buf.String())
	}
}

func TestComputeFaultWithRealPools(t *testing.T) {
	t.Parallel()
	for name, factory := range backends() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			calc := New(logging.NewNopLogger(), WithPoolFactory(factory), WithFunc(func(x float64) float64 {
				if x == 500 {
					var m map[string]int
					m["nil map write"] = 1
				}
				return Of(x)
			}))
			in := make([]float64, 1000)
			for i := range in {
				in[i] = float64(i)
			}
			got, err := calc.Compute(context.Background(), in, 8)
			if err == nil || len(got) != 0 {
				t.Fatalf("Compute() = %d values, %v; want empty and an error", len(got), err)
			}
		})
	}
}

func TestComputeCanceledContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pool := mocks.NewMockPool(ctrl)
	pool.EXPECT().Wait().Return(nil)
	pool.EXPECT().Shutdown().Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calc := New(logging.NewNopLogger(), WithPoolFactory(func(int) parallel.Pool { return pool }))
	got, err := calc.Compute(ctx, []float64{1, 2, 3}, 2)
	if !errors.Is(err, context.Canceled) || len(got) != 0 {
		t.Errorf("Compute(canceled) = %v, %v; want empty and context.Canceled", got, err)
	}
}

// TestComputeMatchesSequential_PropertyBased checks positional equality with
// the sequential map for random inputs and worker counts.
func TestComputeMatchesSequential_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)
	calc := New(logging.NewNopLogger())

	properties.Property("parallel tangent equals sequential tangent", prop.ForAll(
		func(values []float64, threads int) bool {
			got, err := calc.Compute(context.Background(), values, threads)
			if err != nil || len(got) != len(values) {
				return false
			}
			want := Sequential(values)
			for i := range want {
				if !sameBits(got[i], want[i]) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}
