package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/logging"
)

// Write renders t in the given format
func Write(w io.Writer, format Format, t Table) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// Save renders t and writes it to its fixed filename inside dir, replacing
// any earlier export. An empty dir means the working directory. Returns the
// written path.
func Save(dir string, format Format, t Table) (string, error) {
	name := t.Filename(format)
	if name == "" {
		return "", fmt.Errorf("table has no %s filename", format)
	}
	if dir == "" {
		dir = "."
	}

	var buf bytes.Buffer
	if err := Write(&buf, format, t); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, name)

	// Write to temp file then rename so a failed export never leaves a
	// truncated document behind
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to save export: %w", err)
	}

	logging.Info("Exported page",
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.Int("rows", len(t.Rows)),
	)
	return path, nil
}
