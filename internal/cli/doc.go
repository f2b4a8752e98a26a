// Package cli renders tancalc's terminal output: a spinner while each scenario
// runs and a summary table once the run completes.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Example: [DisplaySummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Example: [FormatSummary].
package cli
