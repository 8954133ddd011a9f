package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv
const (
	EnvAPIURL    = "GEOADMIN_API_URL"
	EnvTimeout   = "GEOADMIN_TIMEOUT"
	EnvPageSize  = "GEOADMIN_PAGE_SIZE"
	EnvExportDir = "GEOADMIN_EXPORT_DIR"
	EnvLogLevel  = "GEOADMIN_LOG_LEVEL"
	EnvLogFile   = "GEOADMIN_LOG_FILE"
)

// DotEnvFile is the file LoadDotEnv reads when called without arguments
const DotEnvFile = ".env"

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment. Variables that are already set win, and
// missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DotEnvFile}
	}

	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load %v: %w", present, err)
	}
	return nil
}

// ApplyEnv overrides settings from GEOADMIN_* variables. lookup is
// os.LookupEnv outside tests.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	s.fillDefaults()

	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		s.API.URL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		n, err := positiveInt(EnvTimeout, v)
		if err != nil {
			return err
		}
		s.API.TimeoutSeconds = n
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := positiveInt(EnvPageSize, v)
		if err != nil {
			return err
		}
		s.UI.PageSize = n
	}
	if v, ok := lookup(EnvExportDir); ok && v != "" {
		s.Export.Dir = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		s.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		s.Logging.File = v
	}
	return nil
}

func positiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}
