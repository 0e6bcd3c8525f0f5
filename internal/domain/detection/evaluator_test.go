package detection

import (
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stoik/url-risk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Analyze_Scenarios(t *testing.T) {
	evaluator := NewEvaluator(DefaultRegistry())

	tests := []struct {
		name            string
		url             string
		expectedScore   int
		expectedVerdict domain.Verdict
		expectedColor   domain.ColorClass
		triggered       []string
	}{
		{
			name:            "Plain domain - nothing triggers",
			url:             "http://example.com",
			expectedScore:   0,
			expectedVerdict: domain.VerdictLegitimate,
			expectedColor:   domain.ColorLegitimate,
		},
		{
			name:            "IP host with login keyword",
			url:             "http://192.168.1.1/login",
			expectedScore:   55, // 40 + 15
			expectedVerdict: domain.VerdictMedium,
			expectedColor:   domain.ColorSuspicious,
			triggered:       []string{RuleIPAddressInHost, RuleSuspiciousKeywords},
		},
		{
			name:            "Deep subdomains with verify-account path",
			url:             "http://a.b.c.d.example.com/verify-account",
			expectedScore:   40, // 25 + 15
			expectedVerdict: domain.VerdictMedium,
			expectedColor:   domain.ColorSuspicious,
			triggered:       []string{RuleSubdomainDepth, RuleSuspiciousKeywords},
		},
		{
			name:            "Long IP URL with userinfo and keywords",
			url:             "http://user@192.168.1.1/secure/login?account=verify&session=0000000000000000000000000",
			expectedScore:   105, // 20 + 40 + 30 + 15
			expectedVerdict: domain.VerdictHigh,
			expectedColor:   domain.ColorPhishing,
			triggered: []string{
				RuleURLLength, RuleIPAddressInHost, RuleAtSymbolPresence, RuleSuspiciousKeywords,
			},
		},
		{
			name:            "At symbol alone lands exactly on medium threshold",
			url:             "http://user@example.com",
			expectedScore:   30,
			expectedVerdict: domain.VerdictMedium,
			expectedColor:   domain.ColorSuspicious,
			triggered:       []string{RuleAtSymbolPresence},
		},
		{
			name:            "IP plus at symbol lands exactly on high threshold",
			url:             "http://user@10.0.0.1/",
			expectedScore:   70,
			expectedVerdict: domain.VerdictHigh,
			expectedColor:   domain.ColorPhishing,
			triggered:       []string{RuleIPAddressInHost, RuleAtSymbolPresence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := evaluator.Analyze(tt.url)

			assert.Equal(t, tt.expectedScore, result.PhishScore)
			assert.Equal(t, tt.expectedVerdict, result.Verdict)
			assert.Equal(t, tt.expectedColor, result.ColorClass)

			registry := evaluator.Registry()
			require.Len(t, result.FeatureResults, registry.Len())

			want := make(map[string]bool)
			for _, id := range tt.triggered {
				want[id] = true
			}
			for i, rule := range registry.Rules() {
				feature := result.FeatureResults[i]
				assert.Equal(t, want[rule.ID], feature.IsTriggered, "Trigger mismatch for %s", rule.ID)
			}
		})
	}
}

func TestEvaluator_Analyze_FailClosed(t *testing.T) {
	evaluator := NewEvaluator(nil)

	inputs := []string{
		"not a url",
		"",
		"example.com",
		"//example.com/path",
		"http://",
		"https:///login",
		"http://exa mple.com/",
		"http://[::1/",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			result := evaluator.Analyze(input)

			assert.Equal(t, 100, result.PhishScore)
			assert.Equal(t, domain.VerdictInvalidURL, result.Verdict)
			assert.Equal(t, domain.ColorPhishing, result.ColorClass)
			assert.NotNil(t, result.FeatureResults)
			assert.Empty(t, result.FeatureResults)
		})
	}
}

func TestEvaluator_Analyze_ScoreIsSumOfTriggeredWeights(t *testing.T) {
	evaluator := NewEvaluator(DefaultRegistry())
	maxScore := evaluator.Registry().MaxScore()

	urls := []string{
		"http://example.com",
		"https://login.secure.bank.example.com/update?user=a@b.c",
		"http://1.2.3.4/" + strings.Repeat("x", 80),
		"ftp://files.example.org/pub",
		"mailto:someone@example.com",
	}

	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			result := evaluator.Analyze(u)

			sum := 0
			for _, f := range result.FeatureResults {
				if f.IsTriggered {
					assert.Equal(t, f.MaxScore, f.Score)
				} else {
					assert.Zero(t, f.Score)
				}
				sum += f.Score
			}
			assert.Equal(t, sum, result.PhishScore)
			assert.GreaterOrEqual(t, result.PhishScore, 0)
			assert.LessOrEqual(t, result.PhishScore, maxScore)
		})
	}
}

func TestEvaluator_Analyze_Deterministic(t *testing.T) {
	evaluator := NewEvaluator(DefaultRegistry())
	u := "http://user@192.168.1.1/secure/login?account=verify"

	first := evaluator.Analyze(u)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, evaluator.Analyze(u))
	}
}

func TestEvaluator_Analyze_ConcurrentCallers(t *testing.T) {
	evaluator := NewEvaluator(DefaultRegistry())
	expected := evaluator.Analyze("http://192.168.1.1/login")

	var wg sync.WaitGroup
	results := make([]domain.AnalysisResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = evaluator.Analyze("http://192.168.1.1/login")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

func TestEvaluator_Analyze_OrderFollowsRegistry(t *testing.T) {
	// Only the last rule triggers; order must still match the registry
	registry, err := NewRegistry(
		Rule{ID: "first", Name: "First", Weight: 5, Check: func(string, *url.URL) bool { return false }},
		Rule{ID: "second", Name: "Second", Weight: 7, Check: func(string, *url.URL) bool { return false }},
		Rule{ID: "third", Name: "Third", Weight: 11, Check: always},
	)
	require.NoError(t, err)

	result := NewEvaluator(registry).Analyze("https://example.com")

	require.Len(t, result.FeatureResults, 3)
	assert.Equal(t, "First", result.FeatureResults[0].Name)
	assert.Equal(t, "Second", result.FeatureResults[1].Name)
	assert.Equal(t, "Third", result.FeatureResults[2].Name)
	assert.Equal(t, 11, result.PhishScore)
	assert.Equal(t, 7, result.FeatureResults[1].MaxScore)
}

func TestEvaluator_Analyze_TierBoundaries(t *testing.T) {
	tests := []struct {
		name            string
		weight          int
		expectedVerdict domain.Verdict
	}{
		{"Score 29", 29, domain.VerdictLegitimate},
		{"Score 30", 30, domain.VerdictMedium},
		{"Score 69", 69, domain.VerdictMedium},
		{"Score 70", 70, domain.VerdictHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(Rule{ID: "fixed", Name: "Fixed", Weight: tt.weight, Check: always})
			require.NoError(t, err)

			result := NewEvaluator(registry).Analyze("https://example.com")
			assert.Equal(t, tt.weight, result.PhishScore)
			assert.Equal(t, tt.expectedVerdict, result.Verdict)
		})
	}
}

func TestParseURL(t *testing.T) {
	parsed, err := ParseURL("https://User@Sub.Example.COM:8443/path?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, "sub.example.com", hostname(parsed))

	_, err = ParseURL("not a url")
	assert.ErrorIs(t, err, ErrMalformedURL)
}
