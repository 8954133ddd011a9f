// Package tui implements the interactive admin client with Bubble Tea.
//
// Two screens are mounted by route: "/" manages countries and "/state"
// manages states. Both have the same layout:
//
//   - a form with a name input (plus a country selector on the State screen)
//     whose submit label reads "Add X" or "Update X"
//   - a table of the current page with edit, delete and view keys
//   - previous/next paging with the controls struck through at the bounds
//   - export of the loaded page to PDF or XLSX
//
// Every request runs as a tea.Cmd and reports back through a message. A
// failed request is logged and leaves the screen as it was.
package tui
