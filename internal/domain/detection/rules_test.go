package detection

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkRule runs a single default rule against raw
func checkRule(t *testing.T, id, raw string) bool {
	t.Helper()
	rule, ok := DefaultRegistry().Lookup(id)
	require.True(t, ok, "rule %s should be registered", id)
	parsed, err := ParseURL(raw)
	require.NoError(t, err)
	return rule.Check(raw, parsed)
}

func TestURLLengthRule(t *testing.T) {
	base := "http://example.com/" // 19 chars

	tests := []struct {
		name          string
		url           string
		expectTrigger bool
	}{
		{"Short URL", "http://example.com", false},
		{"Exactly 75 chars - not triggered", base + strings.Repeat("a", 56), false},
		{"76 chars - triggered", base + strings.Repeat("a", 57), true},
		{"Multibyte path counted in characters", base + strings.Repeat("é", 56), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectTrigger, checkRule(t, RuleURLLength, tt.url))
		})
	}
}

func TestIPAddressInHostRule(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectTrigger bool
	}{
		{"Domain name", "http://example.com", false},
		{"Private IPv4", "http://192.168.1.1/login", true},
		{"IPv4 with port", "http://10.0.0.1:8080/", true},
		{"IPv4 with userinfo", "http://user@192.168.1.1/", true},
		{"Out-of-range octets still match", "http://999.999.999.999/", true},
		{"Three groups only", "http://10.0.1/", false},
		{"Four-digit group", "http://1000.0.0.1/", false},
		{"IPv6 literal", "http://[::1]/", false},
		{"Opaque URL without host", "mailto:someone@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectTrigger, checkRule(t, RuleIPAddressInHost, tt.url))
		})
	}
}

func TestAtSymbolRule(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectTrigger bool
	}{
		{"No at symbol", "http://example.com/path", false},
		{"Userinfo redirect", "http://paypal.com@evil.example/", true},
		{"At symbol in query", "http://example.com/?email=a@b.c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectTrigger, checkRule(t, RuleAtSymbolPresence, tt.url))
		})
	}
}

func TestSubdomainDepthRule(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectTrigger bool
	}{
		{"Two labels", "http://example.com", false},
		{"Three labels", "http://www.example.com", false},
		{"Four labels", "http://a.www.example.com", true},
		{"Six labels", "http://a.b.c.d.example.com/verify-account", true},
		{"Port does not count", "http://www.example.com:8443/", false},
		{"IPv4 host has no subdomains", "http://192.168.1.1/", false},
		{"Single label host", "http://localhost/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectTrigger, checkRule(t, RuleSubdomainDepth, tt.url))
		})
	}
}

func TestSuspiciousKeywordsRule(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectTrigger bool
	}{
		{"No keywords", "http://example.com/about", false},
		{"Login in path", "http://example.com/login", true},
		{"Uppercase keyword", "HTTP://EXAMPLE.COM/SECURE", true},
		{"Keyword in host", "http://verify-paypal.example.com", true},
		{"Keyword in query", "http://example.com/?next=update", true},
		{"Banking embedded in word", "http://onlinebankingportal.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectTrigger, checkRule(t, RuleSuspiciousKeywords, tt.url))
		})
	}
}

func TestDefaultRegistry_Contents(t *testing.T) {
	registry := DefaultRegistry()

	expected := []struct {
		id     string
		weight int
	}{
		{RuleURLLength, 20},
		{RuleIPAddressInHost, 40},
		{RuleAtSymbolPresence, 30},
		{RuleSubdomainDepth, 25},
		{RuleSuspiciousKeywords, 15},
	}

	rules := registry.Rules()
	require.Len(t, rules, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.id, rules[i].ID, "Rule order mismatch at %d", i)
		assert.Equal(t, e.weight, rules[i].Weight)
		assert.NotEmpty(t, rules[i].Name)
		assert.NotEmpty(t, rules[i].Description)
	}
	assert.Equal(t, 130, registry.MaxScore())
}
