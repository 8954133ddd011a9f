package discovery

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/logging"
)

// Announcement is a running mDNS registration
type Announcement struct {
	server *zeroconf.Server
}

// Announce registers instance as a ServiceType service on port. txt entries
// are "key=value" strings. Call Shutdown to withdraw it.
func Announce(instance string, port int, txt []string) (*Announcement, error) {
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Announcing backend via mDNS",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Announcement{server: server}, nil
}

// Shutdown withdraws the announcement
func (a *Announcement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
}
