package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stoik/url-risk/internal/domain"
	"github.com/stoik/url-risk/internal/domain/detection"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyURL is returned for blank input; the analyzer is never called for it
	ErrEmptyURL = errors.New("empty URL")

	// ErrTooManyURLs is returned when a batch exceeds Options.MaxBatch
	ErrTooManyURLs = errors.New("too many URLs in batch")
)

// Options tunes batch processing
type Options struct {
	// Concurrency bounds how many URLs of a batch are scored at once
	Concurrency int
	// MaxBatch caps the number of URLs accepted per batch
	MaxBatch int
}

// DefaultOptions returns the batch limits used when none are configured
func DefaultOptions() Options {
	return Options{
		Concurrency: 8,
		MaxBatch:    1000,
	}
}

// URLAnalysisService orchestrates URL scoring for the CLI and HTTP adapters
//
// The evaluator is pure domain logic; this layer owns input normalization,
// report metadata and alert logging.
type URLAnalysisService struct {
	evaluator *detection.Evaluator
	logger    *slog.Logger
	opts      Options

	// now is replaced in tests
	now func() time.Time
}

// NewURLAnalysisService creates a new analysis service with dependency injection
func NewURLAnalysisService(evaluator *detection.Evaluator, logger *slog.Logger, opts Options) *URLAnalysisService {
	defaults := DefaultOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaults.Concurrency
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = defaults.MaxBatch
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &URLAnalysisService{
		evaluator: evaluator,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// Analyze scores a single URL
//
// Leading and trailing whitespace is trimmed before scoring. A malformed URL
// is not an error: it produces the fail-closed "Error: Invalid URL" result.
func (s *URLAnalysisService) Analyze(ctx context.Context, raw string) (domain.URLReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.URLReport{}, err
	}

	u := strings.TrimSpace(raw)
	if u == "" {
		return domain.URLReport{}, ErrEmptyURL
	}

	report := domain.URLReport{
		ID:         uuid.New(),
		URL:        u,
		Result:     s.evaluator.Analyze(u),
		AnalyzedAt: s.now().UTC(),
	}

	s.logResult(report)
	return report, nil
}

// AnalyzeBatch scores every non-blank URL, keeping input order
//
// Blank entries are skipped rather than rejected so line-oriented input
// can be passed through unchanged.
func (s *URLAnalysisService) AnalyzeBatch(ctx context.Context, urls []string) ([]domain.URLReport, error) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}

	if len(cleaned) > s.opts.MaxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyURLs, len(cleaned), s.opts.MaxBatch)
	}

	reports := make([]domain.URLReport, len(cleaned))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, u := range cleaned {
		g.Go(func() error {
			report, err := s.Analyze(ctx, u)
			if err != nil {
				return fmt.Errorf("analyze %q: %w", u, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("batch analyzed", "urls", len(reports), "skipped", len(urls)-len(cleaned))
	return reports, nil
}

// Rules returns the rules the service scores with, in evaluation order
func (s *URLAnalysisService) Rules() []detection.Rule {
	return s.evaluator.Registry().Rules()
}

// logResult emits an alert for high-risk verdicts and a debug line otherwise
func (s *URLAnalysisService) logResult(report domain.URLReport) {
	result := report.Result

	if !result.IsHighRisk() {
		s.logger.Debug("url analyzed",
			"id", report.ID,
			"url", report.URL,
			"score", result.PhishScore,
			"verdict", result.Verdict,
		)
		return
	}

	// In production, this would feed a blocklist or a security team alert channel
	triggered := make([]string, 0, len(result.FeatureResults))
	for _, f := range result.FeatureResults {
		if f.IsTriggered {
			triggered = append(triggered, f.Name)
		}
	}
	s.logger.Warn("🚨 HIGH RISK URL DETECTED",
		"id", report.ID,
		"url", report.URL,
		"score", result.PhishScore,
		"verdict", result.Verdict,
		"triggered", triggered,
	)
}
