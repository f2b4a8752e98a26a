// Package format holds pure formatting helpers shared by the logging and
// presentation layers.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders d as fractional seconds with six decimals, the unit
// used in timing log lines.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%f", d.Seconds())
}

// Speedup returns sequential/parallel, or 0 when parallel is zero.
func Speedup(sequential, parallel time.Duration) float64 {
	if parallel <= 0 {
		return 0
	}
	return float64(sequential) / float64(parallel)
}

// FormatSpeedup renders a speedup ratio such as "3.42x", or "n/a" for zero.
func FormatSpeedup(ratio float64) string {
	if ratio <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", ratio)
}
