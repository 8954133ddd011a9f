// Package ui renders the output of geoadmin's one-shot commands.
//
// These components use Lipgloss and follow a "print and exit" pattern; the
// interactive screens live in package tui.
//
//   - Header: banner showing the command and its parameters
//   - RenderTable: bordered listing of a page of records
//   - Result: success, failure and warning boxes
//   - Confirm: yes/no prompt before destructive commands
//
// Example:
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Countries", "geoadmin country list", map[string]string{"Page": "1 of 3"})
//	p.PrintTable([]string{"ID", "Name"}, rows, "Page 1 of 3")
//
// Logging is controlled separately with GEOADMIN_LOG_LEVEL. When unset, zap
// is silent and only this package's output reaches the terminal.
package ui
