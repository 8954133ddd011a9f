package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/logging"
)

const (
	// ServiceType is the mDNS service type announced by geoadmin-server
	ServiceType = "_geoadmin._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 3 * time.Second

	// DefaultPort is assumed when an entry advertises port 0
	DefaultPort = 8080
)

// Scanner browses the LAN for backends
type Scanner struct {
	// Timeout is the maximum time to browse
	Timeout time.Duration
}

// NewScanner creates a scanner with the default timeout
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan collects every backend that answers within the timeout
func (s *Scanner) Scan(ctx context.Context) ([]*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	var (
		mu       sync.Mutex
		backends = make([]*Backend, 0)
		seen     = make(map[string]bool)
	)

	go func() {
		defer close(done)
		for entry := range entries {
			backend := parseServiceEntry(entry)
			if backend == nil {
				continue
			}
			mu.Lock()
			if !seen[backend.Instance] {
				seen[backend.Instance] = true
				backends = append(backends, backend)
				logging.Debug("Discovered backend",
					zap.String("instance", backend.Instance),
					zap.String("url", backend.BaseURL()),
				)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	// The resolver closes entries once the context ends
	select {
	case <-done:
	case <-time.After(time.Second):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]*Backend(nil), backends...), nil
}

// Find waits for the first backend, or the one named instance when
// instance is non-empty.
func (s *Scanner) Find(ctx context.Context, instance string) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Backend, 1)

	go func() {
		for entry := range entries {
			backend := parseServiceEntry(entry)
			if backend == nil || (instance != "" && backend.Instance != instance) {
				continue
			}
			select {
			case found <- backend:
			default:
			}
			cancel()
			return
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case backend := <-found:
		return backend, nil
	case <-ctx.Done():
		// Find may have cancelled after sending
		select {
		case backend := <-found:
			return backend, nil
		default:
		}
		if instance != "" {
			return nil, fmt.Errorf("backend %q not found within %s", instance, s.Timeout)
		}
		return nil, fmt.Errorf("no backend found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf entry to a Backend.
// Returns nil for entries without a usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Backend {
	if entry == nil {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string, len(entry.Text))
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}

	return &Backend{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
