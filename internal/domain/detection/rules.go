package detection

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Default rule IDs
const (
	RuleURLLength          = "urlLength"
	RuleIPAddressInHost    = "ipAddressInHost"
	RuleAtSymbolPresence   = "atSymbolPresence"
	RuleSubdomainDepth     = "subdomainDepth"
	RuleSuspiciousKeywords = "suspiciousKeywords"
)

const (
	maxURLLength    = 75
	maxHostLabels   = 3 // two-label root plus one subdomain
	atSymbol        = "@"
	hostLabelSymbol = "."
)

// suspiciousKeywords are words phishing URLs use to imitate account flows
var suspiciousKeywords = []string{"login", "secure", "verify", "account", "update", "banking"}

// defaultRules is the built-in rule table, in display order
var defaultRules = []Rule{
	{
		ID:          RuleURLLength,
		Name:        "Feature 1: URL Length (> 75 chars)",
		Weight:      20,
		Check:       checkURLLength,
		Description: "Long URLs can obscure suspicious domains.",
	},
	{
		ID:          RuleIPAddressInHost,
		Name:        "Feature 2: IP Address in Hostname",
		Weight:      40,
		Check:       checkIPAddressInHost,
		Description: "IP addresses bypass domain safety checks.",
	},
	{
		ID:          RuleAtSymbolPresence,
		Name:        "Feature 3: '@' Symbol",
		Weight:      30,
		Check:       checkAtSymbol,
		Description: "'@' symbol can redirect to malicious targets.",
	},
	{
		ID:          RuleSubdomainDepth,
		Name:        "Feature 4: Excessive Subdomain Depth (>2)",
		Weight:      25,
		Check:       checkSubdomainDepth,
		Description: "Too many subdomains may hide malicious roots.",
	},
	{
		ID:          RuleSuspiciousKeywords,
		Name:        "Feature 5: Suspicious Keywords",
		Weight:      15,
		Check:       checkSuspiciousKeywords,
		Description: "Keywords used to trigger urgency.",
	},
}

// DefaultRegistry returns the built-in heuristic rules
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultRules...)
	if err != nil {
		// The default table is static; failing here is a programming error.
		panic(err)
	}
	return r
}

func checkURLLength(raw string, _ *url.URL) bool {
	return utf8.RuneCountInString(raw) > maxURLLength
}

// checkIPAddressInHost matches dotted-quad literals without bounding octets to 0-255
func checkIPAddressInHost(_ string, parsed *url.URL) bool {
	host := hostname(parsed)
	if host == "" {
		return false
	}
	return ipv4Pattern.MatchString(host)
}

func checkAtSymbol(raw string, _ *url.URL) bool {
	return strings.Contains(raw, atSymbol)
}

// checkSubdomainDepth counts DNS labels; a dotted-quad host has no subdomains
func checkSubdomainDepth(_ string, parsed *url.URL) bool {
	host := hostname(parsed)
	if ipv4Pattern.MatchString(host) {
		return false
	}
	return len(strings.Split(host, hostLabelSymbol)) > maxHostLabels
}

func checkSuspiciousKeywords(raw string, _ *url.URL) bool {
	return containsAny(strings.ToLower(raw), suspiciousKeywords)
}
