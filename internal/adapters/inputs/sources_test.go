package inputs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stoik/url-risk/internal/domain"
	"github.com/stoik/url-risk/internal/domain/detection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSource_URLs(t *testing.T) {
	input := strings.Join([]string{
		"# suspicious links reported this week",
		"http://example.com",
		"",
		"   http://192.168.1.1/login   ",
		"#http://commented.example",
		"not a url",
	}, "\n")

	source := NewReaderSource("test", strings.NewReader(input))
	urls, err := source.URLs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test", source.Name())
	assert.Equal(t, []string{"http://example.com", "http://192.168.1.1/login", "not a url"}, urls)
}

func TestFileSource_URLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://a.example\r\nhttps://b.example\n"), 0o644))

	urls, err := NewFileSource(path).URLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.txt")).URLs(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestArgsSource_URLs(t *testing.T) {
	args := []string{"http://a.example", "http://b.example"}
	source := NewArgsSource(args)

	urls, err := source.URLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, args, urls)

	urls[0] = "mutated"
	assert.Equal(t, "http://a.example", args[0], "Source must not alias caller slice")
}

func TestExampleSource_CoversEveryTier(t *testing.T) {
	urls, err := NewExampleSource().URLs(context.Background())
	require.NoError(t, err)

	evaluator := detection.NewEvaluator(detection.DefaultRegistry())
	seen := make(map[domain.Verdict]bool)
	for _, u := range urls {
		seen[evaluator.Analyze(u).Verdict] = true
	}

	assert.True(t, seen[domain.VerdictLegitimate])
	assert.True(t, seen[domain.VerdictMedium])
	assert.True(t, seen[domain.VerdictHigh])
	assert.False(t, seen[domain.VerdictInvalidURL])
}
