package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stoik/url-risk/internal/domain"
)

// JSONWriter implements ports.ReportWriter as indented JSON
//
// With OutDir set, each report goes to <OutDir>/<report id>.json.
// Otherwise it is streamed to Out.
type JSONWriter struct {
	OutDir string
	Out    io.Writer
}

// NewJSONFileWriter creates a writer producing one file per report
func NewJSONFileWriter(outDir string) *JSONWriter {
	return &JSONWriter{OutDir: outDir}
}

// NewJSONStreamWriter creates a writer streaming reports to w
func NewJSONStreamWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{Out: w}
}

// Write encodes the report
func (jw *JSONWriter) Write(ctx context.Context, report domain.URLReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if jw.OutDir == "" {
		if jw.Out == nil {
			return "", fmt.Errorf("json writer has neither an output dir nor a stream")
		}
		return "", encode(jw.Out, report)
	}

	if err := os.MkdirAll(jw.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	path := filepath.Join(jw.OutDir, report.ID.String()+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := encode(f, report); err != nil {
		return "", err
	}
	return path, nil
}

func encode(w io.Writer, report domain.URLReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.ID, err)
	}
	return nil
}
