package inputs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when stdin is an interactive terminal with nothing piped in
var ErrNoInput = errors.New("no input provided: supply URLs as arguments, --file, or pipe them to stdin")

// maxLineLength bounds a single input line; longer lines fail the scan
const maxLineLength = 1 << 20

// ArgsSource implements ports.URLSource for URLs given on the command line
type ArgsSource struct {
	args []string
}

// NewArgsSource creates a source over positional arguments
func NewArgsSource(args []string) *ArgsSource {
	return &ArgsSource{args: args}
}

// Name returns the source name
func (s *ArgsSource) Name() string {
	return "args"
}

// URLs returns the arguments unchanged
func (s *ArgsSource) URLs(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.args))
	copy(out, s.args)
	return out, nil
}

// ReaderSource implements ports.URLSource for line-oriented input
//
// One URL per line. Blank lines and lines starting with '#' are skipped.
// Lines are not split on whitespace: a URL containing spaces is kept whole so
// it is scored (as invalid) rather than silently broken into fragments.
type ReaderSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewReaderSource creates a source reading from r
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

// NewFileSource creates a source reading the file at path
func NewFileSource(path string) *ReaderSource {
	return &ReaderSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewStdinSource creates a source reading piped stdin
func NewStdinSource() *ReaderSource {
	return &ReaderSource{
		name: "stdin",
		open: func() (io.ReadCloser, error) {
			stat, err := os.Stdin.Stat()
			if err != nil {
				return nil, fmt.Errorf("failed to stat stdin: %w", err)
			}
			if stat.Mode()&os.ModeCharDevice != 0 {
				return nil, ErrNoInput
			}
			return io.NopCloser(os.Stdin), nil
		},
	}
}

// Name returns the source name
func (s *ReaderSource) Name() string {
	return s.name
}

// URLs reads all URLs from the underlying reader
func (s *ReaderSource) URLs(ctx context.Context) ([]string, error) {
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.name, err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var out []string
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	return out, nil
}
