package ports

import (
	"context"

	"github.com/stoik/url-risk/internal/domain"
)

// ReportWriter defines the contract for exporting an analysis report
type ReportWriter interface {
	// Write exports the report and returns the file path it was written to,
	// or "" when the writer streams to an io.Writer instead of a file
	Write(ctx context.Context, report domain.URLReport) (string, error)
}
