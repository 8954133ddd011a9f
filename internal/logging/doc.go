// Package logging is the diagnostic channel for geoadmin.
//
// It wraps a package-level zap logger with helpers for the events the admin
// client and the development server care about: outgoing REST calls, failed
// operations, served requests and change events.
//
// # Log Levels
//
//   - Debug: request/response detail, event payloads
//   - Info: completed requests, server lifecycle
//   - Warn: requests that came back with a non-success status
//   - Error: failed operations (network, HTTP, parse)
//
// # Silent By Default
//
// When neither a level nor GEOADMIN_LOG_LEVEL is set, the logger is a Nop.
// Command-line output stays clean unless the user asks for diagnostics.
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # File Output
//
// The interactive screens own the terminal, so they send diagnostics to a
// file instead:
//
//	logging.InitializeWithOutput("info", "/home/me/.config/geoadmin/geoadmin.log")
//
// # Thread Safety
//
// All functions are safe for concurrent use once initialized.
package logging
