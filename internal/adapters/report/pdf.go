package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/stoik/url-risk/internal/adapters/presentation"
	"github.com/stoik/url-risk/internal/domain"
)

// rgb is a PDF fill/draw colour
type rgb struct{ r, g, b int }

// tierColors mirror the colour classes of the web verdict box
var tierColors = map[domain.ColorClass]rgb{
	domain.ColorPhishing:   {239, 68, 68},
	domain.ColorSuspicious: {245, 158, 11},
	domain.ColorLegitimate: {34, 197, 94},
}

const (
	pageMargin  = 14.0
	radarRadius = 38.0
	fontFamily  = "Helvetica"
)

// PDFWriter implements ports.ReportWriter as a one-page PDF per report
type PDFWriter struct {
	OutDir string
}

// NewPDFWriter creates a writer producing <outDir>/<report id>.pdf
func NewPDFWriter(outDir string) *PDFWriter {
	return &PDFWriter{OutDir: outDir}
}

// Write renders the report to a file
func (pw *PDFWriter) Write(ctx context.Context, report domain.URLReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(pw.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	pdf, err := buildPDF(report)
	if err != nil {
		return "", err
	}

	path := filepath.Join(pw.OutDir, report.ID.String()+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	return path, nil
}

// RenderPDF writes the report as a PDF document to w
func RenderPDF(w io.Writer, report domain.URLReport) error {
	pdf, err := buildPDF(report)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(report domain.URLReport) (*gofpdf.Fpdf, error) {
	result := report.Result

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("URL Phishing Risk Report", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 9, "URL Phishing Risk Report", "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 5, fmt.Sprintf("Report ID: %s", report.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Analyzed at: %s", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(30, 30, 30)
	pdf.MultiCell(0, 5, tr("URL: "+report.URL), "", "L", false)
	pdf.Ln(3)

	// Verdict box
	c, ok := tierColors[result.ColorClass]
	if !ok {
		c = rgb{120, 120, 120}
	}
	pdf.SetFillColor(c.r, c.g, c.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, tr(string(result.Verdict)), "", 1, "C", true, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Phish score: %d", result.PhishScore), "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sectionTitle(pdf, "Heuristic Features")
	if len(result.FeatureResults) == 0 {
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(0, 5, "The URL could not be parsed; no rules were evaluated.", "", "L", false)
	} else {
		featureTable(pdf, tr, result.FeatureResults)

		pdf.Ln(4)
		sectionTitle(pdf, "Risk Profile")
		cx := 105.0
		cy := pdf.GetY() + radarRadius + 8
		canvas := presentation.NewChartCanvas(&pdfRadarBackend{pdf: pdf, tr: tr, cx: cx, cy: cy, radius: radarRadius})
		if err := canvas.Render(presentation.RadarSeries(result.FeatureResults)); err != nil {
			return nil, err
		}
		if err := canvas.Close(); err != nil {
			return nil, err
		}
		pdf.SetY(cy + radarRadius + 10)
	}

	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 4, "Heuristic score only: no reputation, DNS or certificate data was consulted.", "", "L", false)

	if pdf.Err() {
		return nil, fmt.Errorf("failed to build pdf: %w", pdf.Error())
	}
	return pdf, nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pdf.GetX(), pdf.GetY(), 210-pageMargin, pdf.GetY())
	pdf.Ln(2)
}

func featureTable(pdf *gofpdf.Fpdf, tr func(string) string, features []domain.FeatureResult) {
	widths := []float64{62, 26, 20, 74}
	headers := []string{"Feature", "Status", "Score", "Rationale"}

	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetTextColor(0, 0, 0)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 9)
	for _, f := range features {
		status := "clear"
		if f.IsTriggered {
			status = "TRIGGERED"
			pdf.SetTextColor(185, 28, 28)
		} else {
			pdf.SetTextColor(21, 128, 61)
		}
		pdf.CellFormat(widths[0], 6, tr(presentation.ChartLabel(f.Name)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, status, "1", 0, "L", false, 0, "")
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d/%d", f.Score, f.MaxScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(truncate(pdf, f.Description, widths[3]-2)), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
}

// truncate shortens s with an ellipsis so it fits within width at the current font
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	return s + "..."
}

// pdfRadarBackend draws radar charts onto a PDF page
type pdfRadarBackend struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	cx, cy float64
	radius float64
}

func (b *pdfRadarBackend) NewRadarChart(data presentation.RadarData) (presentation.Chart, error) {
	pdf := b.pdf
	if len(data.Values) < 3 {
		// A polygon needs three axes; fall back to the table alone
		return &pdfRadarChart{pdf: pdf}, nil
	}

	// Grid rings and spokes
	pdf.SetDrawColor(190, 190, 190)
	pdf.SetLineWidth(0.2)
	for _, ratio := range []float64{0.5, 1} {
		pdf.Polygon(toPoints(data.Axes(b.cx, b.cy, b.radius*ratio)), "D")
	}
	for _, p := range data.Axes(b.cx, b.cy, b.radius) {
		pdf.Line(b.cx, b.cy, p.X, p.Y)
	}

	// Data polygon, translucent red like the web chart
	pdf.SetAlpha(0.4, "Normal")
	pdf.SetFillColor(239, 68, 68)
	pdf.Polygon(toPoints(data.Points(b.cx, b.cy, b.radius)), "F")
	pdf.SetAlpha(1, "Normal")
	pdf.SetDrawColor(239, 68, 68)
	pdf.SetLineWidth(0.6)
	pdf.Polygon(toPoints(data.Points(b.cx, b.cy, b.radius)), "D")

	// Axis labels just outside the outer ring
	pdf.SetFont(fontFamily, "", 8)
	pdf.SetTextColor(50, 50, 50)
	for i, p := range data.Axes(b.cx, b.cy, b.radius+4) {
		label := b.tr(fmt.Sprintf("%s (%d)", data.Labels[i], data.Values[i]))
		w := pdf.GetStringWidth(label)
		x := p.X - w/2
		if p.X > b.cx+1 {
			x = p.X
		} else if p.X < b.cx-1 {
			x = p.X - w
		}
		pdf.Text(x, p.Y+1, label)
	}

	return &pdfRadarChart{pdf: pdf}, nil
}

// pdfRadarChart restores the drawing state the chart changed
type pdfRadarChart struct {
	pdf *gofpdf.Fpdf
}

func (c *pdfRadarChart) Destroy() error {
	c.pdf.SetAlpha(1, "Normal")
	c.pdf.SetLineWidth(0.2)
	c.pdf.SetDrawColor(0, 0, 0)
	c.pdf.SetTextColor(0, 0, 0)
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}

func toPoints(points []presentation.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(points))
	for i, p := range points {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}
