// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/tancalc/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the TANCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	{"COUNTS", []string{"counts"}, func(c *AppConfig, v string) error {
		parsed, err := parseCounts(v)
		if err != nil {
			return err
		}
		c.Counts = parsed
		return nil
	}},
	{"WORKERS", []string{"workers", "t"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Workers = parsed
		return nil
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Timeout = parsed
		return nil
	}},
	{"INPUT", []string{"input"}, func(c *AppConfig, v string) error {
		c.InputFile = v
		return nil
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"POOL", []string{"pool"}, func(c *AppConfig, v string) error {
		c.Pool = v
		return nil
	}},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) error {
		c.LogFormat = v
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Unlike flags, a malformed numeric or duration value is reported rather than
// ignored, so a typo in the environment cannot silently change a run.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return apperrors.NewConfigError("invalid %s%s=%q: %v", EnvPrefix, o.envKey, val, err)
			}
		}
	}
	return nil
}
