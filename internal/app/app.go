package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/tancalc/internal/cli"
	"github.com/agbru/tancalc/internal/config"
	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/harness"
	"github.com/agbru/tancalc/internal/logging"
	"github.com/agbru/tancalc/internal/metrics"
	"github.com/agbru/tancalc/internal/parallel"
	"github.com/agbru/tancalc/internal/tangent"
	"github.com/agbru/tancalc/internal/ui"
)

// Application represents the tancalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "tancalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes every configured scenario and returns the process exit code.
// Logs go to ErrWriter; the spinner and summary table go to out.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	log, err := logging.New(logging.Options{
		Writer:    a.ErrWriter,
		Component: "tancalc",
		Level:     a.Config.LogLevel,
		Format:    a.Config.LogFormat,
		NoColor:   !ui.ColorsEnabled(),
	})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: invalid log level: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	factory, err := parallel.FactoryFor(a.Config.Pool)
	if err != nil {
		log.Error("invalid pool backend", err)
		return apperrors.ExitCodeFor(err)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	recorder := metrics.NewRecorder()

	// Choose reporter based on quiet mode
	var reporter harness.Reporter = harness.NullReporter{}
	var spin *cli.SpinnerReporter
	if !a.Config.Quiet {
		spin = cli.NewSpinnerReporter(out)
		defer spin.Close()
		reporter = spin
	}

	h := harness.New(
		harness.Config{InputFile: a.Config.InputFile, OutputFile: a.Config.OutputFile},
		log,
		tangent.New(log, tangent.WithPoolFactory(factory)),
		harness.WithRecorder(recorder),
		harness.WithReporter(reporter),
	)

	log.Debug("starting run",
		logging.Int("scenarios", len(a.Config.Counts)),
		logging.Int("workers", a.Config.Workers),
		logging.String("pool", a.Config.Pool))

	results, runErr := h.Run(ctx, harness.ScenariosFor(a.Config.Counts, a.Config.Workers))
	if spin != nil {
		spin.Close()
		cli.DisplaySummary(out, results)
	}

	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			log.Error("could not write metrics file", err, logging.String("path", a.Config.MetricsFile))
		}
	}

	if runErr != nil {
		log.Error("run aborted", runErr, logging.Int("completed", len(results)))
		return apperrors.ExitCodeFor(runErr)
	}
	return exitCodeForResults(results)
}

// exitCodeForResults reports a mismatch when any scenario that completed
// without a fault disagreed with the sequential baseline.
func exitCodeForResults(results []harness.Result) int {
	for _, r := range results {
		if r.Err == nil && !r.Consistent {
			return apperrors.ExitErrorMismatch
		}
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
