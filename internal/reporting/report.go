// Package reporting renders benchmark runs as markdown and HTML
// reports.
package reporting

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dialectlab/retain/internal/models"
)

// Markdown renders a run as a markdown report with the overall summary,
// per-model statistics and the retention pivot tables.
func Markdown(run *models.RunResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Retention Report: %s\n\n", run.RunID)
	fmt.Fprintf(&b, "Generated %s\n\n", run.Timestamp.Format("2006-01-02 15:04:05 MST"))

	s := run.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total tests | %d |\n", s.TotalTests)
	fmt.Fprintf(&b, "| Successful tests | %d |\n", s.SuccessfulTests)
	fmt.Fprintf(&b, "| Models tested | %d |\n", s.ModelsTested)
	fmt.Fprintf(&b, "| Varieties tested | %d |\n", s.VarietiesTested)
	fmt.Fprintf(&b, "| Average retention | %.1f%% |\n", s.AverageRetentionRate*100)
	fmt.Fprintf(&b, "| Duration | %.1fs |\n\n", float64(run.DurationMs)/1000.0)

	if len(s.ModelPerformance) > 0 {
		b.WriteString("## Model Performance\n\n")
		b.WriteString("| Model | Mean Retention |\n|---|---|\n")
		for _, model := range sortedKeys(s.ModelPerformance) {
			fmt.Fprintf(&b, "| %s | %.1f%% |\n", model, s.ModelPerformance[model]*100)
		}
		b.WriteString("\n")
	}

	if len(s.VarietyDifficulty) > 0 {
		b.WriteString("## Variety Difficulty\n\n")
		b.WriteString("| Variety | Mean Retention |\n|---|---|\n")
		for _, variety := range sortedKeys(s.VarietyDifficulty) {
			fmt.Fprintf(&b, "| %s | %.1f%% |\n", variety, s.VarietyDifficulty[variety]*100)
		}
		b.WriteString("\n")
	}

	writePivot(&b, "Retention by Model and Variety", s.ModelByVariety)
	writePivot(&b, "Success by Model and Task", s.ModelByTask)

	if len(run.ModelStats) > 0 {
		b.WriteString("## Model Statistics\n\n")
		b.WriteString("| Model | Records | Mean | StdDev | Min | Max | 95% CI |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		names := make([]string, 0, len(run.ModelStats))
		for m := range run.ModelStats {
			names = append(names, m)
		}
		sort.Strings(names)
		for _, m := range names {
			st := run.ModelStats[m]
			fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %.3f | %.3f | [%.3f, %.3f] |\n",
				m, st.Records, st.MeanRetention, st.StdDevRetention,
				st.MinRetention, st.MaxRetention, st.CI95Lo, st.CI95Hi)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writePivot(b *strings.Builder, title string, t models.PivotTable) {
	if len(t.Rows) == 0 || len(t.Columns) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| |")
	for _, col := range t.Columns {
		fmt.Fprintf(b, " %s |", col)
	}
	b.WriteString("\n|---|")
	for range t.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		fmt.Fprintf(b, "| %s |", row)
		for _, col := range t.Columns {
			fmt.Fprintf(b, " %.3f |", t.Value(row, col))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
)

// HTML renders a run as a standalone HTML page.
func HTML(run *models.RunResult) ([]byte, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(run)), &body); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, pageHeader, run.RunID)
	page.Write(body.Bytes())
	page.WriteString(pageFooter)
	return page.Bytes(), nil
}

const pageHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Retention Report: %s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #cbd5e1; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f1f5f9; }
h1, h2 { color: #0f172a; }
</style>
</head>
<body>
`

const pageFooter = `</body>
</html>
`
