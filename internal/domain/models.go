package domain

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the risk tier derived from the aggregate phish score
type Verdict string

const (
	VerdictHigh       Verdict = "Phishing Risk: High"
	VerdictMedium     Verdict = "Suspicious Risk: Medium"
	VerdictLegitimate Verdict = "Legitimate"
	VerdictInvalidURL Verdict = "Error: Invalid URL"
)

// ColorClass is the display hint tied 1:1 to a verdict
type ColorClass string

const (
	ColorPhishing   ColorClass = "phishing"
	ColorSuspicious ColorClass = "suspicious"
	ColorLegitimate ColorClass = "legitimate"
)

// Tier thresholds, inclusive lower bounds
const (
	HighRiskThreshold   = 70
	MediumRiskThreshold = 30

	// InvalidURLScore is awarded to input that cannot be parsed as a URL
	InvalidURLScore = 100
)

// FeatureResult is the outcome of a single heuristic rule for one URL
type FeatureResult struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`    // 0 or MaxScore
	MaxScore    int    `json:"maxScore"` // the rule weight
	IsTriggered bool   `json:"isTriggered"`
	Description string `json:"description"`
}

// AnalysisResult is the scoring engine output for one URL
//
// FeatureResults follow rule registry order, whether or not a rule triggered.
type AnalysisResult struct {
	PhishScore     int             `json:"phishScore"`
	Verdict        Verdict         `json:"verdict"`
	ColorClass     ColorClass      `json:"colorClass"`
	FeatureResults []FeatureResult `json:"featureResults"`
}

// URLReport wraps an AnalysisResult with the metadata callers need to
// display or export it. It is never persisted.
type URLReport struct {
	ID         uuid.UUID      `json:"id"`
	URL        string         `json:"url"`
	Result     AnalysisResult `json:"result"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}

// Classify converts a phish score to its verdict tier
func Classify(score int) (Verdict, ColorClass) {
	switch {
	case score >= HighRiskThreshold:
		return VerdictHigh, ColorPhishing
	case score >= MediumRiskThreshold:
		return VerdictMedium, ColorSuspicious
	default:
		return VerdictLegitimate, ColorLegitimate
	}
}

// InvalidURLResult is the fail-closed result for unparseable input
func InvalidURLResult() AnalysisResult {
	return AnalysisResult{
		PhishScore:     InvalidURLScore,
		Verdict:        VerdictInvalidURL,
		ColorClass:     ColorPhishing,
		FeatureResults: []FeatureResult{},
	}
}

// IsHighRisk reports whether the result falls in the phishing tier,
// including the fail-closed invalid URL result.
func (r AnalysisResult) IsHighRisk() bool {
	return r.ColorClass == ColorPhishing
}

// TriggeredCount returns how many rules triggered
func (r AnalysisResult) TriggeredCount() int {
	n := 0
	for _, f := range r.FeatureResults {
		if f.IsTriggered {
			n++
		}
	}
	return n
}
