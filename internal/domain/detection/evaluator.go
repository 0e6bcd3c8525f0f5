package detection

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/stoik/url-risk/internal/domain"
)

// ErrMalformedURL is returned by ParseURL for input that is not an absolute URL
var ErrMalformedURL = errors.New("malformed URL")

// networkSchemes require an authority component to be a valid URL
var networkSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// Evaluator scores URLs against a rule registry
//
// Each call to Analyze is independent and has no side effects: the evaluator
// only reads its registry, so one Evaluator can serve concurrent callers.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over the given registry.
// A nil registry selects DefaultRegistry.
func NewEvaluator(registry *Registry) *Evaluator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Evaluator{registry: registry}
}

// Registry returns the rules this evaluator runs
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// Analyze runs every rule against raw and classifies the aggregate score
//
// Input that fails to parse is not an error: it yields the fail-closed
// domain.InvalidURLResult, treating the URL as maximally suspicious.
func (e *Evaluator) Analyze(raw string) domain.AnalysisResult {
	parsed, err := ParseURL(raw)
	if err != nil {
		return domain.InvalidURLResult()
	}

	features := make([]domain.FeatureResult, 0, len(e.registry.rules))
	phishScore := 0

	for _, rule := range e.registry.rules {
		triggered := rule.Check(raw, parsed)
		score := 0
		if triggered {
			score = rule.Weight
		}
		phishScore += score

		features = append(features, domain.FeatureResult{
			Name:        rule.Name,
			Score:       score,
			MaxScore:    rule.Weight,
			IsTriggered: triggered,
			Description: rule.Description,
		})
	}

	verdict, color := domain.Classify(phishScore)

	return domain.AnalysisResult{
		PhishScore:     phishScore,
		Verdict:        verdict,
		ColorClass:     color,
		FeatureResults: features,
	}
}

// ParseURL parses raw as an absolute URL
//
// url.Parse alone accepts relative references such as "not a url", so a
// scheme is required, and network schemes must also carry a host.
func ParseURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if parsed.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrMalformedURL, raw)
	}
	if networkSchemes[strings.ToLower(parsed.Scheme)] && parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrMalformedURL, raw)
	}
	return parsed, nil
}
