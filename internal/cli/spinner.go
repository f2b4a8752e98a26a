package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/tancalc/internal/format"
	"github.com/agbru/tancalc/internal/harness"
)

// SpinnerRefreshRate defines the refresh frequency of the spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples SpinnerReporter from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// SpinnerReporter implements harness.Reporter with a terminal spinner.
// Each scenario gets its own spinner; a one-line outcome is printed when the
// scenario finishes. Callers must call Close so an aborted run does not leave
// the spinner animating.
type SpinnerReporter struct {
	out     io.Writer
	current Spinner
}

var _ harness.Reporter = (*SpinnerReporter)(nil)

// NewSpinnerReporter returns a reporter drawing on out.
func NewSpinnerReporter(out io.Writer) *SpinnerReporter {
	return &SpinnerReporter{out: out}
}

// ScenarioStarted starts a spinner for s.
func (r *SpinnerReporter) ScenarioStarted(s harness.Scenario) {
	r.Close()
	r.current = newSpinner(spinner.WithWriter(r.out))
	r.current.UpdateSuffix(fmt.Sprintf(" Computing tangents for %d numbers on %d worker(s)...", s.Count, s.Workers))
	r.current.Start()
}

// ScenarioFinished stops the spinner and prints the scenario outcome.
func (r *SpinnerReporter) ScenarioFinished(res harness.Result) {
	r.Close()
	fmt.Fprintf(r.out, "%s %d numbers: sequential %s, parallel %s (%s)\n",
		statusMark(res.Status()), res.Count,
		format.FormatExecutionDuration(res.Sequential),
		format.FormatExecutionDuration(res.Parallel),
		res.Status())
}

// Close stops any running spinner. It is safe to call more than once.
func (r *SpinnerReporter) Close() {
	if r.current != nil {
		r.current.Stop()
		r.current = nil
	}
}
