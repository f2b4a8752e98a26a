package harness

import (
	"context"
	"time"

	"github.com/agbru/tancalc/internal/metrics"
)

// Scenario is one (input size, worker count) pair to measure.
type Scenario struct {
	Count   int
	Workers int
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario
	// Read is the number of values read back from the input file.
	Read int
	// Sequential and Parallel are the wall-clock durations of each map.
	Sequential time.Duration
	Parallel   time.Duration
	// Consistent reports whether both maps produced identical sequences.
	Consistent bool
	// Err is the parallel computation failure, if any (e.g. a worker fault).
	Err error
}

// Status classifies the result as metrics.StatusFault, StatusMismatch or StatusOK.
func (r Result) Status() string {
	switch {
	case r.Err != nil:
		return metrics.StatusFault
	case !r.Consistent:
		return metrics.StatusMismatch
	default:
		return metrics.StatusOK
	}
}

// DefaultScenarios returns the three standard runs: 1, 100 and 1,000,000
// numbers on 10 workers.
func DefaultScenarios() []Scenario {
	return ScenariosFor([]int{1, 100, 1_000_000}, 10)
}

// ScenariosFor pairs every count with the same worker count.
func ScenariosFor(counts []int, workers int) []Scenario {
	out := make([]Scenario, len(counts))
	for i, c := range counts {
		out[i] = Scenario{Count: c, Workers: workers}
	}
	return out
}

// Computer is the parallel tangent map under measurement.
type Computer interface {
	Compute(ctx context.Context, values []float64, threadsNum int) ([]float64, error)
}

// Recorder receives measurements. *metrics.Recorder implements it.
type Recorder interface {
	ObserveCompute(mode string, d time.Duration)
	ScenarioCompleted(status string)
	WorkerFault()
	SetInputSize(n int)
}

// Reporter is notified around each scenario, e.g. to drive a spinner.
type Reporter interface {
	ScenarioStarted(s Scenario)
	ScenarioFinished(r Result)
}

// NullReporter is a no-op Reporter for quiet mode and tests.
type NullReporter struct{}

func (NullReporter) ScenarioStarted(Scenario) {}

func (NullReporter) ScenarioFinished(Result) {}

type nopRecorder struct{}

func (nopRecorder) ObserveCompute(string, time.Duration) {}
func (nopRecorder) ScenarioCompleted(string)             {}
func (nopRecorder) WorkerFault()                         {}
func (nopRecorder) SetInputSize(int)                     {}
