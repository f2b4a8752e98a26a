// Package config parses tancalc's command-line flags and environment
// overrides into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/tancalc/internal/errors"
	"github.com/agbru/tancalc/internal/logging"
	"github.com/agbru/tancalc/internal/parallel"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "TANCALC_"

// Defaults reproduce the standard three-scenario run.
const (
	DefaultCounts    = "1,100,1000000"
	DefaultWorkers   = 10
	DefaultInputFile = "numbers.txt"
	DefaultTimeout   = 10 * time.Minute
)

// AppConfig holds the resolved run configuration.
type AppConfig struct {
	// Counts are the scenario input sizes, run in order.
	Counts []int
	// Workers is the parallel pool size used by every scenario.
	Workers int
	// InputFile is where numbers are generated and read back.
	InputFile string
	// OutputFile optionally receives the parallel results.
	OutputFile string
	// Pool names the worker pool backend (see parallel.FactoryFor).
	Pool string
	// MetricsFile optionally receives a Prometheus textfile after the run.
	MetricsFile string
	// LogLevel and LogFormat configure the zerolog sink.
	LogLevel  string
	LogFormat string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Quiet suppresses the spinner and the summary table.
	Quiet bool
	// NoColor disables colored terminal output.
	NoColor bool
}

// countList is a flag.Value for comma-separated non-negative integers.
type countList []int

func (c *countList) String() string {
	parts := make([]string, len(*c))
	for i, n := range *c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (c *countList) Set(s string) error {
	parsed, err := parseCounts(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func parseCounts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(part, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid count %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is: command-line flags > TANCALC_ environment variables > defaults.
//
// Parameters:
//   - programName: Used in usage output.
//   - args: The command-line arguments.
//   - errWriter: Receives usage and flag errors.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp for -h, otherwise a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	counts := countList{}
	_ = counts.Set(DefaultCounts)

	fs.Var(&counts, "counts", "Comma-separated input sizes, one scenario each.")
	fs.IntVar(&cfg.Workers, "workers", DefaultWorkers, "Number of parallel workers.")
	fs.IntVar(&cfg.Workers, "t", DefaultWorkers, "Number of parallel workers (shorthand).")
	fs.StringVar(&cfg.InputFile, "input", DefaultInputFile, "File the generated numbers are written to and read from.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Optional file receiving the parallel tangent results.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Optional results file (shorthand).")
	fs.StringVar(&cfg.Pool, "pool", parallel.BackendErrgroup, "Worker pool backend: errgroup or pond.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Optional Prometheus textfile written after the run.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	fs.StringVar(&cfg.LogFormat, "log-format", logging.FormatConsole, "Log format: console or json.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Deadline for the whole run.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress the spinner and summary table.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Times sequential versus parallel tangent computation over generated inputs.\n")
		fmt.Fprintf(errWriter, "Every flag can also be set through a %s-prefixed environment variable.\n\n", EnvPrefix)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}
	cfg.Counts = counts

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the run cannot use.
func (c AppConfig) Validate() error {
	if len(c.Counts) == 0 {
		return apperrors.NewConfigError("at least one count is required")
	}
	for _, n := range c.Counts {
		if n < 0 {
			return apperrors.NewConfigError("count must be non-negative, got %d", n)
		}
	}
	if c.Workers <= 0 {
		return apperrors.NewConfigError("workers must be positive, got %d", c.Workers)
	}
	if c.InputFile == "" {
		return apperrors.NewConfigError("input file must not be empty")
	}
	if _, err := parallel.FactoryFor(c.Pool); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		return apperrors.NewConfigError("invalid log format %q (want %q or %q)", c.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
