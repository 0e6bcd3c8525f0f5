package presentation

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/stoik/url-risk/internal/domain"
)

// featurePrefix matches the numbering rule names carry, e.g. "Feature 2: "
var featurePrefix = regexp.MustCompile(`^(?:AI )?Feature \d+: `)

// ChartLabel strips the "Feature N: " numbering from a rule name
func ChartLabel(name string) string {
	return featurePrefix.ReplaceAllString(name, "")
}

// RadarData is one radar chart: an axis per rule, valued by the awarded score
type RadarData struct {
	Labels []string
	Values []int
	Max    int // largest weight among the axes, the outer ring of the chart
}

// Point is a 2D coordinate on a drawing surface
type Point struct {
	X, Y float64
}

// RadarSeries maps feature results to radar chart axes, preserving order
func RadarSeries(results []domain.FeatureResult) RadarData {
	data := RadarData{
		Labels: make([]string, 0, len(results)),
		Values: make([]int, 0, len(results)),
	}
	for _, f := range results {
		data.Labels = append(data.Labels, ChartLabel(f.Name))
		data.Values = append(data.Values, f.Score)
		data.Max = max(data.Max, f.MaxScore)
	}
	return data
}

// Axes returns the outer end of each axis for a chart centered on (cx, cy).
// The first axis points straight up and the rest follow clockwise.
func (d RadarData) Axes(cx, cy, radius float64) []Point {
	return d.scaled(cx, cy, radius, func(int) float64 { return 1 })
}

// Points returns the data polygon vertices for a chart centered on (cx, cy)
func (d RadarData) Points(cx, cy, radius float64) []Point {
	return d.scaled(cx, cy, radius, func(i int) float64 {
		if d.Max <= 0 {
			return 0
		}
		return float64(d.Values[i]) / float64(d.Max)
	})
}

func (d RadarData) scaled(cx, cy, radius float64, ratio func(i int) float64) []Point {
	n := len(d.Values)
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		r := radius * ratio(i)
		points[i] = Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return points
}

// ErrCanvasClosed is returned when rendering on a closed canvas
var ErrCanvasClosed = errors.New("chart canvas closed")

// Chart is a rendered chart that holds resources until destroyed
type Chart interface {
	Destroy() error
}

// ChartBackend draws radar charts on some surface
type ChartBackend interface {
	NewRadarChart(data RadarData) (Chart, error)
}

// ChartCanvas owns at most one live chart on a backend
//
// Render destroys the previous chart before drawing the next one, so a
// canvas reused across analyses never leaks charts. Close releases the last.
type ChartCanvas struct {
	backend ChartBackend
	current Chart
	closed  bool
}

// NewChartCanvas creates a canvas drawing on backend
func NewChartCanvas(backend ChartBackend) *ChartCanvas {
	return &ChartCanvas{backend: backend}
}

// Render replaces the current chart with one drawn from data
func (c *ChartCanvas) Render(data RadarData) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if err := c.destroyCurrent(); err != nil {
		return err
	}

	chart, err := c.backend.NewRadarChart(data)
	if err != nil {
		return fmt.Errorf("failed to render radar chart: %w", err)
	}
	c.current = chart
	return nil
}

// Clear destroys the current chart, leaving the canvas usable
func (c *ChartCanvas) Clear() error {
	return c.destroyCurrent()
}

// Close destroys the current chart; the canvas cannot be reused afterwards
func (c *ChartCanvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.destroyCurrent()
}

func (c *ChartCanvas) destroyCurrent() error {
	if c.current == nil {
		return nil
	}
	chart := c.current
	c.current = nil
	if err := chart.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy chart: %w", err)
	}
	return nil
}

// TextChartBackend draws radar axes as horizontal bars on a terminal
type TextChartBackend struct {
	w     io.Writer
	width int
}

// NewTextChartBackend creates a backend writing bars up to width cells wide
func NewTextChartBackend(w io.Writer, width int) *TextChartBackend {
	if width <= 0 {
		width = 20
	}
	return &TextChartBackend{w: w, width: width}
}

// NewRadarChart writes one bar per axis
func (b *TextChartBackend) NewRadarChart(data RadarData) (Chart, error) {
	labelWidth := 0
	for _, l := range data.Labels {
		labelWidth = max(labelWidth, len(l))
	}

	for i, label := range data.Labels {
		filled := 0
		if data.Max > 0 {
			filled = data.Values[i] * b.width / data.Max
		}
		bar := strings.Repeat("#", filled) + strings.Repeat(".", b.width-filled)
		if _, err := fmt.Fprintf(b.w, "  %-*s |%s| %d\n", labelWidth, label, bar, data.Values[i]); err != nil {
			return nil, err
		}
	}
	return &textChart{w: b.w}, nil
}

// textChart ends its block with a blank separator line when destroyed
type textChart struct {
	w io.Writer
}

func (c *textChart) Destroy() error {
	_, err := fmt.Fprintln(c.w)
	return err
}
