// Package metrics records run measurements: Prometheus series for compute
// durations and outcomes, and runtime memory snapshots.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Compute modes used as the "mode" label.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// Scenario outcomes used as the "status" label.
const (
	StatusOK       = "ok"
	StatusFault    = "fault"
	StatusMismatch = "mismatch"
)

// Recorder owns a private Prometheus registry so that several recorders
// (one per run or per test) never collide on registration.
type Recorder struct {
	registry        *prometheus.Registry
	computeDuration *prometheus.HistogramVec
	scenarios       *prometheus.CounterVec
	workerFaults    prometheus.Counter
	inputSize       prometheus.Gauge
}

// NewRecorder creates a Recorder with the tancalc series and the Go runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		computeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tancalc_compute_duration_seconds",
			Help:    "Wall-clock time of one tangent computation over a whole input.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"mode"}),
		scenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tancalc_scenarios_total",
			Help: "Completed timing scenarios by outcome.",
		}, []string{"status"}),
		workerFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tancalc_worker_faults_total",
			Help: "Parallel batches discarded because a worker task faulted.",
		}),
		inputSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tancalc_last_input_size",
			Help: "Number of values read for the most recent scenario.",
		}),
	}
	r.registry.MustRegister(
		r.computeDuration,
		r.scenarios,
		r.workerFaults,
		r.inputSize,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveCompute records one computation of the given mode.
func (r *Recorder) ObserveCompute(mode string, d time.Duration) {
	r.computeDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// ScenarioCompleted counts a finished scenario with its status.
func (r *Recorder) ScenarioCompleted(status string) {
	r.scenarios.WithLabelValues(status).Inc()
}

// WorkerFault counts a discarded parallel batch.
func (r *Recorder) WorkerFault() {
	r.workerFaults.Inc()
}

// SetInputSize records the size of the sequence just read.
func (r *Recorder) SetInputSize(n int) {
	r.inputSize.Set(float64(n))
}

// Gatherer exposes the registry, e.g. for promhttp or tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all series to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
