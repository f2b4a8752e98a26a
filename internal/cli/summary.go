package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/tancalc/internal/format"
	"github.com/agbru/tancalc/internal/harness"
	"github.com/agbru/tancalc/internal/metrics"
	"github.com/agbru/tancalc/internal/ui"
)

var summaryHeaders = []string{"Count", "Workers", "Read", "Sequential", "Parallel", "Speedup", "Status"}

const statusColumn = 6

// statusMark is the one-character prefix for a scenario outcome.
func statusMark(status string) string {
	switch status {
	case metrics.StatusOK:
		return "✓"
	case metrics.StatusMismatch:
		return "≠"
	default:
		return "✗"
	}
}

// FormatSummary renders the results as a table styled with the current ui theme.
//
// Parameters:
//   - results: The scenario results, in run order.
//
// Returns:
//   - string: The rendered table, or an empty string when there are no results.
func FormatSummary(results []harness.Result) string {
	if len(results) == 0 {
		return ""
	}
	theme := ui.GetCurrentTheme()

	rows := make([][]string, len(results))
	statuses := make([]string, len(results))
	for i, r := range results {
		statuses[i] = r.Status()
		rows[i] = []string{
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Read),
			format.FormatExecutionDuration(r.Sequential),
			format.FormatExecutionDuration(r.Parallel),
			format.FormatSpeedup(format.Speedup(r.Sequential, r.Parallel)),
			statusMark(statuses[i]) + " " + statuses[i],
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col != statusColumn || row < 0 || row >= len(statuses) {
				return cellStyle
			}
			switch statuses[row] {
			case metrics.StatusOK:
				return cellStyle.Foreground(theme.Success)
			case metrics.StatusMismatch:
				return cellStyle.Foreground(theme.Warning)
			default:
				return cellStyle.Foreground(theme.Error)
			}
		})
	return t.Render()
}

// DisplaySummary writes the summary table to out.
func DisplaySummary(out io.Writer, results []harness.Result) {
	s := FormatSummary(results)
	if s == "" {
		return
	}
	fmt.Fprintln(out, s)
}
