package ports

import (
	"context"
)

// URLSource defines the contract for supplying URLs to analyze
type URLSource interface {
	// Name identifies the source in logs (e.g., "stdin", "args")
	Name() string

	// URLs returns the raw URLs in source order. Entries are not trimmed or
	// validated here; the application layer owns normalization.
	URLs(ctx context.Context) ([]string, error)
}
