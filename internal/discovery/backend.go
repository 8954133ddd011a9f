package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Backend is a geoadmin development backend found on the network
type Backend struct {
	// Instance is the advertised mDNS instance name (e.g., "geoadmin-lab")
	Instance string

	// Hostname is the mDNS hostname (e.g., "lab.local.")
	Hostname string

	// IP is the preferred address, IPv4 when one is advertised
	IP string

	// Port is the HTTP port of the REST API
	Port int

	// Metadata holds the TXT records, e.g. "version=v0.3.0"
	Metadata map[string]string

	// DiscoveredAt is when the backend answered
	DiscoveredAt time.Time
}

// String returns a human-readable description of the backend
func (b *Backend) String() string {
	return fmt.Sprintf("%s (%s) at %s", b.Instance, b.Hostname, b.BaseURL())
}

// BaseURL returns the API root of the backend
func (b *Backend) BaseURL() string {
	return "http://" + net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}

// GetMetadata returns a TXT value, or "" when absent
func (b *Backend) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
