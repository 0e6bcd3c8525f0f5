package detection

import (
	"net/url"
	"regexp"
	"strings"
)

// ipv4Pattern accepts any dotted quad of 1-3 digit groups, e.g. 999.1.1.1
var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// hostname returns the lowercased host of a parsed URL without port or brackets
func hostname(parsed *url.URL) string {
	if parsed == nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// containsAny checks if text contains any of the keywords
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
