// Package ui renders the terminal output of the scheduledevents CLI.
//
// Components are rendered once and printed; nothing here reads input.
//
//   - Header: command banner showing the operation and its parameters
//   - Result: success, failure or warning box with details and
//     troubleshooting tips
//   - RenderTable: bordered table for interface attempts and events
//
// Widths follow the terminal (golang.org/x/term), clamped between
// MinTerminalWidth and MaxContentWidth.
//
// # Logging Integration
//
// zap logging is silent unless SCHEDULEDEVENTS_LOG_LEVEL or --log-level is
// set, so the rendered output is not interleaved with log lines.
package ui
