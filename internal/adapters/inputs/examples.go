package inputs

import (
	"context"
)

// exampleURLs are the sample links offered to first-time users, covering every tier
var exampleURLs = []string{
	"https://www.google.com",
	"http://192.168.1.1/login",
	"http://a.b.c.d.example.com/verify-account",
	"http://paypal.com@secure.paypal.com.login.example.net/account/update?session=8f14e45fceea167a",
}

// ExampleSource implements ports.URLSource with built-in sample URLs
// Used when the CLI is run without any input, to demonstrate each verdict tier.
type ExampleSource struct{}

// NewExampleSource creates a new example source
func NewExampleSource() *ExampleSource {
	return &ExampleSource{}
}

// Name returns the source name
func (s *ExampleSource) Name() string {
	return "examples"
}

// URLs returns a copy of the sample URLs
func (s *ExampleSource) URLs(ctx context.Context) ([]string, error) {
	out := make([]string, len(exampleURLs))
	copy(out, exampleURLs)
	return out, nil
}
