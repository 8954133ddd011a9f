package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantURL  string
	}{
		{
			name: "IPv4 backend",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "geoadmin-lab"},
				HostName:      "lab.local.",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.40")},
				Text:          []string{"version=v0.3.0", "api=/country"},
			},
			wantIP:   "192.168.1.40",
			wantPort: 8080,
			wantURL:  "http://192.168.1.40:8080",
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "v6"},
				HostName:      "v6.local.",
				Port:          9000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 9000,
			wantURL:  "http://[fe80::1]:9000",
		},
		{
			name: "prefers IPv4 over IPv6",
			entry: &zeroconf.ServiceEntry{
				HostName: "dual.local.",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "10.0.0.5",
			wantPort: 8080,
			wantURL:  "http://10.0.0.5:8080",
		},
		{
			name: "port zero falls back to default",
			entry: &zeroconf.ServiceEntry{
				HostName: "noport.local.",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.6")},
			},
			wantIP:   "10.0.0.6",
			wantPort: DefaultPort,
			wantURL:  "http://10.0.0.6:8080",
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				HostName: "ghost.local.",
				Port:     8080,
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if backend != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", backend)
				}
				return
			}
			if backend == nil {
				t.Fatal("parseServiceEntry() = nil, want backend")
			}
			if backend.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", backend.IP, tt.wantIP)
			}
			if backend.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", backend.Port, tt.wantPort)
			}
			if backend.BaseURL() != tt.wantURL {
				t.Errorf("BaseURL() = %v, want %v", backend.BaseURL(), tt.wantURL)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	backend := parseServiceEntry(&zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "geoadmin-lab"},
		HostName:      "lab.local.",
		Port:          8080,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.40")},
		Text:          []string{"version=v0.3.0", "seeded", "path=a=b"},
	})

	if backend.Instance != "geoadmin-lab" {
		t.Errorf("Instance = %v", backend.Instance)
	}
	if got := backend.GetMetadata("version"); got != "v0.3.0" {
		t.Errorf("version = %q", got)
	}
	if _, ok := backend.Metadata["seeded"]; !ok {
		t.Error("key without value should be kept")
	}
	if got := backend.GetMetadata("path"); got != "a=b" {
		t.Errorf("path = %q, value should keep later '='", got)
	}
	if backend.GetMetadata("missing") != "" {
		t.Error("missing key should be empty")
	}
	if time.Since(backend.DiscoveredAt) > time.Minute {
		t.Error("DiscoveredAt should be set")
	}
}

func TestBackend_String(t *testing.T) {
	b := &Backend{Instance: "geoadmin-lab", Hostname: "lab.local.", IP: "10.0.0.2", Port: 8080}
	want := "geoadmin-lab (lab.local.) at http://10.0.0.2:8080"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	var empty Backend
	if empty.GetMetadata("x") != "" {
		t.Error("GetMetadata on nil map should be empty")
	}
}

func TestNewScanner(t *testing.T) {
	if NewScanner().Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", NewScanner().Timeout, DefaultScanTimeout)
	}
}

func TestAnnouncement_ShutdownNil(t *testing.T) {
	var a *Announcement
	a.Shutdown()
	(&Announcement{}).Shutdown()
}
