package harness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/logging"
	"github.com/agbru/tancalc/internal/metrics"
	"github.com/agbru/tancalc/internal/numio"
	"github.com/agbru/tancalc/internal/sysmon"
	"github.com/agbru/tancalc/internal/tangent"
)

const tracerName = "github.com/agbru/tancalc/internal/harness"

// Config holds the file locations used by every scenario.
type Config struct {
	// InputFile receives the generated integers and is read back.
	InputFile string
	// OutputFile, when set, receives the parallel results of each scenario.
	OutputFile string
}

// Harness runs scenarios. Build it with New.
type Harness struct {
	cfg      Config
	log      logging.Logger
	computer Computer
	recorder Recorder
	reporter Reporter
	tracer   trace.Tracer
	memory   *metrics.MemoryCollector
	sample   func() sysmon.Stats
}

// Option configures a Harness.
type Option func(*Harness)

// WithRecorder sets the measurement sink.
func WithRecorder(r Recorder) Option { return func(h *Harness) { h.recorder = r } }

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option { return func(h *Harness) { h.reporter = r } }

// WithTracer overrides the tracer taken from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option { return func(h *Harness) { h.tracer = t } }

// WithHostSampler overrides the host CPU/memory sampler.
func WithHostSampler(f func() sysmon.Stats) Option { return func(h *Harness) { h.sample = f } }

// New creates a Harness measuring computer and logging through log.
func New(cfg Config, log logging.Logger, computer Computer, opts ...Option) *Harness {
	h := &Harness{
		cfg:      cfg,
		log:      log,
		computer: computer,
		recorder: nopRecorder{},
		reporter: NullReporter{},
		tracer:   otel.Tracer(tracerName),
		memory:   metrics.NewMemoryCollector(),
		sample:   sysmon.Sample,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes the scenarios in order and returns one Result per completed
// scenario.
//
// Only input generation failures, invalid scenarios and context errors abort
// the run; they are returned together with the results gathered so far. A
// worker fault in the parallel map is recorded in that scenario's Result and
// the run continues.
func (h *Harness) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := h.runScenario(ctx, s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (h *Harness) runScenario(ctx context.Context, s Scenario) (res Result, err error) {
	ctx, span := h.tracer.Start(ctx, "harness.scenario", trace.WithAttributes(
		attribute.Int("tancalc.count", s.Count),
		attribute.Int("tancalc.workers", s.Workers),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if s.Workers <= 0 {
		return Result{}, apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be positive, got %d", s.Workers)}
	}

	if host := h.sample(); host.Oversubscribed(s.Workers) {
		h.log.Debug("worker count exceeds logical CPUs",
			logging.Int("workers", s.Workers), logging.Int("host_cpus", host.LogicalCPUs))
	}

	h.reporter.ScenarioStarted(s)
	res = Result{Scenario: s}
	defer func() {
		if err == nil {
			h.reporter.ScenarioFinished(res)
		}
	}()

	if err := numio.Generate(h.cfg.InputFile, s.Count); err != nil {
		return Result{}, apperrors.WrapError(err, "generate %d numbers", s.Count)
	}
	values := numio.ReadSequence(h.cfg.InputFile, h.log)
	res.Read = len(values)
	h.recorder.SetInputSize(len(values))

	before := h.memory.Snapshot()

	start := time.Now()
	seq := tangent.Sequential(values)
	res.Sequential = time.Since(start)
	h.recorder.ObserveCompute(metrics.ModeSequential, res.Sequential)

	start = time.Now()
	par, perr := h.computer.Compute(ctx, values, s.Workers)
	res.Parallel = time.Since(start)
	h.recorder.ObserveCompute(metrics.ModeParallel, res.Parallel)

	if perr != nil {
		var fault *apperrors.WorkerFaultError
		if !errors.As(perr, &fault) {
			return Result{}, apperrors.WrapError(perr, "parallel tangent for %d numbers", s.Count)
		}
		res.Err = perr
		h.recorder.WorkerFault()
		span.RecordError(perr)
	}
	res.Consistent = res.Err == nil && sameSequence(seq, par)

	h.log.Info(timingLine(s.Count, 1, res.Sequential),
		logging.Int("count", s.Count), logging.Int("threads", 1), logging.Float64("seconds", res.Sequential.Seconds()))
	h.log.Info(timingLine(s.Count, s.Workers, res.Parallel),
		logging.Int("count", s.Count), logging.Int("threads", s.Workers), logging.Float64("seconds", res.Parallel.Seconds()))

	after := h.memory.Snapshot()
	h.log.Debug("scenario resources", append(h.sample().Fields(),
		logging.Uint64("allocated_bytes", after.AllocatedSince(before)),
		logging.Int("gc_cycles", int(after.GCsSince(before))))...)

	status := res.Status()
	if status == metrics.StatusMismatch {
		h.log.Warn("sequential and parallel results differ", logging.Int("count", s.Count), logging.Int("threads", s.Workers))
	}
	h.recorder.ScenarioCompleted(status)

	if h.cfg.OutputFile != "" && res.Err == nil {
		numio.WriteSequence(par, h.cfg.OutputFile, h.log)
	}
	return res, nil
}

func timingLine(count, threads int, d time.Duration) string {
	return fmt.Sprintf("Time for %d numbers with %d thread(s) is %f seconds", count, threads, d.Seconds())
}

// sameSequence compares positionally; NaN equals NaN.
func sameSequence(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] && !(math.IsNaN(a[i]) && math.IsNaN(b[i])) {
			return false
		}
	}
	return true
}
