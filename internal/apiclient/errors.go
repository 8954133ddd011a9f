package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// Kind is the category of a failed API call.
type Kind int

const (
	// KindNetwork indicates a transport failure (no HTTP response at all)
	KindNetwork Kind = iota
	// KindHTTP indicates a response with a non-success status code
	KindHTTP
	// KindParse indicates a response body with an unexpected shape
	KindParse
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "Network Error"
	case KindHTTP:
		return "HTTP Error"
	case KindParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NetworkSubtype narrows down a KindNetwork failure
type NetworkSubtype int

const (
	NetworkGeneral NetworkSubtype = iota
	NetworkTimeout
	NetworkConnectionRefused
	NetworkDNS
	NetworkHostUnreachable
	NetworkUnreachable
	NetworkCanceled
)

// APIError describes a failed API call
type APIError struct {
	Kind       Kind           // Category of error
	Op         string         // Operation, e.g. "list countries"
	Message    string         // Human-readable error message
	StatusCode int            // HTTP status code (KindHTTP only)
	Subtype    NetworkSubtype // Network failure detail (KindNetwork only)
	Err        error          // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	prefix := e.Kind.String()
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError turns a transport error into a KindNetwork APIError
func ClassifyNetworkError(op string, err error) *APIError {
	if err == nil {
		return nil
	}

	apiErr := &APIError{
		Kind:    KindNetwork,
		Op:      op,
		Message: "network error occurred",
		Subtype: NetworkGeneral,
		Err:     err,
	}

	switch {
	case errors.Is(err, context.Canceled):
		apiErr.Message = "request canceled"
		apiErr.Subtype = NetworkCanceled
		return apiErr
	case errors.Is(err, context.DeadlineExceeded), os.IsTimeout(err):
		apiErr.Message = "request timed out"
		apiErr.Subtype = NetworkTimeout
		return apiErr
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		apiErr.Message = fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
		apiErr.Subtype = NetworkDNS
		return apiErr
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			apiErr.Message = "backend refused connection"
			apiErr.Subtype = NetworkConnectionRefused
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			apiErr.Message = "host unreachable"
			apiErr.Subtype = NetworkHostUnreachable
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			apiErr.Message = "network unreachable"
			apiErr.Subtype = NetworkUnreachable
		}
	}

	return apiErr
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(op string, err error) *APIError {
	return ClassifyNetworkError(op, err)
}

// NewHTTPError creates an HTTP-level error. body is the (possibly empty)
// response body, trimmed into the message.
func NewHTTPError(op string, statusCode int, body string) *APIError {
	msg := fmt.Sprintf("unexpected status code: %d", statusCode)
	if body = strings.TrimSpace(body); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return &APIError{
		Kind:       KindHTTP,
		Op:         op,
		Message:    msg,
		StatusCode: statusCode,
	}
}

// NewParseError creates a parsing error
func NewParseError(op string, message string, err error) *APIError {
	return &APIError{
		Kind:    KindParse,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// KindOf returns the kind of err and whether err is an *APIError at all.
func KindOf(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNetwork
}

// IsHTTPError checks if an error is an HTTP error
func IsHTTPError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindHTTP
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindParse
}

// StatusCode returns the HTTP status of an HTTP error, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindHTTP {
		return apiErr.StatusCode
	}
	return 0
}

// ShortMessage returns a concise, user-friendly error message
func ShortMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case KindNetwork:
		switch apiErr.Subtype {
		case NetworkTimeout:
			return "Backend not responding (timeout)"
		case NetworkConnectionRefused:
			return "Backend refused connection - is it running?"
		case NetworkDNS:
			return "Cannot resolve backend hostname"
		case NetworkHostUnreachable:
			return "Backend unreachable - check network connection"
		case NetworkUnreachable:
			return "Network unreachable"
		case NetworkCanceled:
			return "Request canceled"
		default:
			return "Network error - check connection"
		}
	case KindHTTP:
		return fmt.Sprintf("Backend error (HTTP %d)", apiErr.StatusCode)
	case KindParse:
		return "Unexpected response from backend"
	default:
		return apiErr.Message
	}
}

// Hint returns troubleshooting advice for an error
func Hint(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Kind {
	case KindNetwork:
		if apiErr.Subtype == NetworkConnectionRefused {
			return strings.Join([]string{
				"Nothing is listening at the configured API URL.",
				"Troubleshooting:",
				"  • Start the backend, or run 'geoadmin-server serve' for a local one",
				"  • Check --api-url or api_url in the config file",
				"  • Try 'geoadmin discover' to find a backend on the LAN",
			}, "\n")
		}
		return strings.Join([]string{
			"Could not reach the backend.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the API URL with 'geoadmin config show'",
			"  • Run 'geoadmin status' to test connectivity",
		}, "\n")

	case KindHTTP:
		if apiErr.StatusCode == 404 {
			return "The record no longer exists, or the API URL points at the wrong service."
		}
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The backend failed (HTTP %d). Check the backend logs.", apiErr.StatusCode)
		}
		return fmt.Sprintf("The backend rejected the request (HTTP %d). Check the submitted values.", apiErr.StatusCode)

	case KindParse:
		return "The backend answered with an unexpected body. Make sure the API URL points at the reference API."

	default:
		return "An error occurred. Please check the error message for details."
	}
}
