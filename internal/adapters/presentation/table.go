package presentation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/stoik/url-risk/internal/domain"
)

const (
	markTriggered = "🚨"
	markClear     = "✅"
)

// verdictBanners maps a color class to the line drawn around the verdict box
var verdictBanners = map[domain.ColorClass]string{
	domain.ColorPhishing:   "!!!",
	domain.ColorSuspicious: "~~~",
	domain.ColorLegitimate: "---",
}

// RenderVerdict writes the verdict box: verdict text, score and color class
func RenderVerdict(w io.Writer, url string, result domain.AnalysisResult) error {
	banner := verdictBanners[result.ColorClass]
	if banner == "" {
		banner = "---"
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n  URL:   %s\n  Score: %d\n  Class: %s\n",
		banner, result.Verdict, banner, url, result.PhishScore, result.ColorClass)
	return err
}

// RenderTable writes the verdict box followed by one row per feature result,
// in the order the rules were evaluated
func RenderTable(w io.Writer, url string, result domain.AnalysisResult) error {
	if err := RenderVerdict(w, url, result); err != nil {
		return err
	}

	if len(result.FeatureResults) == 0 {
		_, err := fmt.Fprintln(w, "  (no rules evaluated)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range result.FeatureResults {
		fmt.Fprintf(tw, "  %s\t%s (%d/%d)\t%s\n", f.Name, mark(f), f.Score, f.MaxScore, f.Description)
	}
	return tw.Flush()
}

// FormatRow renders a single feature result on one line
func FormatRow(f domain.FeatureResult) string {
	return fmt.Sprintf("%s %s (%d/%d) - %s", f.Name, mark(f), f.Score, f.MaxScore, f.Description)
}

// Summary renders a one-line summary suitable for batch listings
func Summary(url string, result domain.AnalysisResult) string {
	names := make([]string, 0, len(result.FeatureResults))
	for _, f := range result.FeatureResults {
		if f.IsTriggered {
			names = append(names, ChartLabel(f.Name))
		}
	}
	triggered := "none"
	if len(names) > 0 {
		triggered = strings.Join(names, ", ")
	}
	return fmt.Sprintf("[%3d] %-24s %s (triggered: %s)", result.PhishScore, result.Verdict, url, triggered)
}

func mark(f domain.FeatureResult) string {
	if f.IsTriggered {
		return markTriggered
	}
	return markClear
}
