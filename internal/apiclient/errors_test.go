package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNetwork, "Network Error"},
		{KindHTTP, "HTTP Error"},
		{KindParse, "Parse Error"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want NetworkSubtype
	}{
		{"canceled", context.Canceled, NetworkCanceled},
		{"deadline", context.DeadlineExceeded, NetworkTimeout},
		{"os timeout", os.ErrDeadlineExceeded, NetworkTimeout},
		{"dns", &net.DNSError{Name: "nowhere.invalid", Err: "no such host"}, NetworkDNS},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, NetworkConnectionRefused},
		{"host unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)}, NetworkHostUnreachable},
		{"net unreachable", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, NetworkUnreachable},
		{"other", errors.New("boom"), NetworkGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError("op", tt.err)
			if got.Kind != KindNetwork {
				t.Errorf("Kind = %v, want KindNetwork", got.Kind)
			}
			if got.Subtype != tt.want {
				t.Errorf("Subtype = %v, want %v", got.Subtype, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the cause")
			}
		})
	}

	if ClassifyNetworkError("op", nil) != nil {
		t.Error("ClassifyNetworkError(nil) should be nil")
	}
}

func TestNewHTTPError_TruncatesBody(t *testing.T) {
	err := NewHTTPError("create country", 400, strings.Repeat("x", 500))
	if err.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", err.StatusCode)
	}
	if len(err.Message) > 260 {
		t.Errorf("Message not truncated: %d chars", len(err.Message))
	}
}

func TestKindPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("command failed: %w", NewParseError("list", "bad", nil))

	if !IsParseError(err) {
		t.Error("IsParseError should see through wrapping")
	}
	if IsHTTPError(err) || IsNetworkError(err) {
		t.Error("only the parse predicate should match")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain error) should report false")
	}
	if StatusCode(err) != 0 {
		t.Error("StatusCode of a parse error should be 0")
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewHTTPError("x", 503, ""), "Backend error (HTTP 503)"},
		{NewParseError("x", "bad", nil), "Unexpected response from backend"},
		{&APIError{Kind: KindNetwork, Subtype: NetworkConnectionRefused}, "Backend refused connection - is it running?"},
		{&APIError{Kind: KindNetwork, Subtype: NetworkTimeout}, "Backend not responding (timeout)"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := ShortMessage(tt.err); got != tt.want {
			t.Errorf("ShortMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHint(t *testing.T) {
	if !strings.Contains(Hint(&APIError{Kind: KindNetwork, Subtype: NetworkConnectionRefused}), "geoadmin-server") {
		t.Error("refused hint should mention the development server")
	}
	if !strings.Contains(Hint(NewHTTPError("x", 404, "")), "no longer exists") {
		t.Error("404 hint should mention missing records")
	}
	if !strings.Contains(Hint(NewHTTPError("x", 500, "")), "HTTP 500") {
		t.Error("5xx hint should include the status")
	}
	if Hint(errors.New("plain")) == "" {
		t.Error("Hint should never be empty")
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Kind: KindParse, Op: "list states", Message: "bad body", Err: errors.New("eof")}
	want := "list states: Parse Error: bad body (caused by: eof)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
