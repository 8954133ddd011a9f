package config

import (
	"sort"
	"time"
)

// CurrentVersion is the settings file format version
const CurrentVersion = 1

// Default values
const (
	DefaultAPIURL           = "http://localhost:8080"
	DefaultTimeoutSeconds   = 10
	DefaultPageSize         = 5
	DefaultExportDir        = "."
	DefaultDiscoverySeconds = 3
	DefaultLogFileName      = "geoadmin.log"
)

// Settings is the entire settings file
type Settings struct {
	Version   int                `yaml:"version"`
	API       *APISettings       `yaml:"api"`
	UI        *UISettings        `yaml:"ui"`
	Export    *ExportSettings    `yaml:"export"`
	Logging   *LogSettings       `yaml:"logging"`
	Discovery *DiscoverySettings `yaml:"discovery"`
	Servers   map[string]*Server `yaml:"servers,omitempty"` // Keyed by mDNS instance name
}

// APISettings locates the REST backend
type APISettings struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// UISettings tunes the interactive screens
type UISettings struct {
	PageSize   int    `yaml:"page_size"`
	StartRoute string `yaml:"start_route,omitempty"` // "/" or "/state"
}

// ExportSettings controls where PDF/XLSX exports are written
type ExportSettings struct {
	Dir string `yaml:"dir"`
}

// LogSettings configures the diagnostic log.
// The interactive screens always log to File so output never mixes with
// the terminal UI.
type LogSettings struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error; empty is silent
	File  string `yaml:"file,omitempty"`  // empty selects <config dir>/geoadmin.log
}

// DiscoverySettings configures the mDNS lookup of a development backend
type DiscoverySettings struct {
	AutoDiscover   bool `yaml:"auto_discover"` // Browse on startup when no URL is pinned
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// Server is a backend found on the LAN
type Server struct {
	URL      string    `yaml:"url"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewSettings creates settings with default values
func NewSettings() *Settings {
	s := &Settings{Version: CurrentVersion}
	s.fillDefaults()
	return s
}

// fillDefaults sets every missing section and zero value to its default
func (s *Settings) fillDefaults() {
	if s.API == nil {
		s.API = &APISettings{}
	}
	if s.API.URL == "" {
		s.API.URL = DefaultAPIURL
	}
	if s.API.TimeoutSeconds <= 0 {
		s.API.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if s.UI == nil {
		s.UI = &UISettings{}
	}
	if s.UI.PageSize <= 0 {
		s.UI.PageSize = DefaultPageSize
	}

	if s.Export == nil {
		s.Export = &ExportSettings{}
	}
	if s.Export.Dir == "" {
		s.Export.Dir = DefaultExportDir
	}

	if s.Logging == nil {
		s.Logging = &LogSettings{}
	}

	if s.Discovery == nil {
		s.Discovery = &DiscoverySettings{TimeoutSeconds: DefaultDiscoverySeconds}
	}
	if s.Discovery.TimeoutSeconds <= 0 {
		s.Discovery.TimeoutSeconds = DefaultDiscoverySeconds
	}

	if s.Servers == nil {
		s.Servers = make(map[string]*Server)
	}
}

// Timeout returns the HTTP timeout
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.API.TimeoutSeconds) * time.Second
}

// DiscoveryTimeout returns the mDNS browse timeout
func (s *Settings) DiscoveryTimeout() time.Duration {
	return time.Duration(s.Discovery.TimeoutSeconds) * time.Second
}

// RememberServer records a discovered backend and when it was seen
func (s *Settings) RememberServer(name, url string) {
	if s.Servers == nil {
		s.Servers = make(map[string]*Server)
	}
	s.Servers[name] = &Server{URL: url, LastSeen: time.Now()}
}

// ServerNames returns the remembered server names in sorted order
func (s *Settings) ServerNames() []string {
	names := make([]string, 0, len(s.Servers))
	for name := range s.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogFilePath returns the configured log file, or the default file in the
// config directory.
func (s *Settings) LogFilePath() (string, error) {
	if s.Logging.File != "" {
		return s.Logging.File, nil
	}
	return DefaultLogPath()
}
