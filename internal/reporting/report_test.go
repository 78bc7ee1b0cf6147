package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dialectlab/retain/internal/aggregate"
	"github.com/dialectlab/retain/internal/models"
)

func sampleRun() *models.RunResult {
	records := []models.ScoredRecord{
		{Model: "gemini/gemini-2.5-flash", Variety: "AAVE", Task: "paraphrase", ExpectedMarkers: []string{"finna", "yo"}, FoundMarkers: []string{"finna"}, RetentionRate: 0.5, Success: true},
		{Model: "gemini/gemini-2.5-flash", Variety: "BrEng", Task: "explain", ExpectedMarkers: []string{"cuppa"}, FoundMarkers: []string{"cuppa"}, RetentionRate: 1.0, Success: true},
		{Model: "openai/gpt-4o", Variety: "AAVE", Task: "paraphrase", ExpectedMarkers: []string{"finna", "yo"}, FoundMarkers: []string{}, RetentionRate: 0.0, Success: true},
	}
	return &models.RunResult{
		RunID:      "run-42",
		Timestamp:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Models:     []string{"gemini/gemini-2.5-flash", "openai/gpt-4o"},
		Records:    records,
		Summary:    aggregate.Summarize(records),
		ModelStats: aggregate.PerModelStats(records),
		DurationMs: 3500,
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleRun())

	t.Run("header and summary", func(t *testing.T) {
		require.Contains(t, md, "# Retention Report: run-42")
		require.Contains(t, md, "| Total tests | 3 |")
		require.Contains(t, md, "| Successful tests | 3 |")
		require.Contains(t, md, "| Models tested | 2 |")
		require.Contains(t, md, "| Varieties tested | 2 |")
		require.Contains(t, md, "| Duration | 3.5s |")
	})

	t.Run("model performance", func(t *testing.T) {
		require.Contains(t, md, "## Model Performance")
		require.Contains(t, md, "| gemini/gemini-2.5-flash | 75.0% |")
		require.Contains(t, md, "| openai/gpt-4o | 0.0% |")
	})

	t.Run("variety difficulty", func(t *testing.T) {
		require.Contains(t, md, "## Variety Difficulty")
		require.Contains(t, md, "| BrEng | 100.0% |")
	})

	t.Run("pivot tables", func(t *testing.T) {
		require.Contains(t, md, "## Retention by Model and Variety")
		require.Contains(t, md, "## Success by Model and Task")
		// openai/gpt-4o has no BrEng record, so the cell is zero-filled.
		require.Contains(t, md, "| openai/gpt-4o | 0.000 | 0.000 |")
	})

	t.Run("model statistics", func(t *testing.T) {
		require.Contains(t, md, "## Model Statistics")
		require.Contains(t, md, "| gemini/gemini-2.5-flash | 2 | 0.750 |")
	})
}

func TestMarkdown_Minimal(t *testing.T) {
	run := &models.RunResult{
		RunID:     "empty",
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Summary:   aggregate.Summarize(nil),
	}
	md := Markdown(run)

	require.Contains(t, md, "# Retention Report: empty")
	require.Contains(t, md, "| Total tests | 0 |")
	require.NotContains(t, md, "## Model Performance")
	require.NotContains(t, md, "## Retention by Model and Variety")
	require.NotContains(t, md, "## Model Statistics")
}

func TestHTML(t *testing.T) {
	page, err := HTML(sampleRun())
	require.NoError(t, err)

	html := string(page)
	require.Contains(t, html, "<title>Retention Report: run-42</title>")
	require.Contains(t, html, "<h1>Retention Report: run-42</h1>")
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "</html>")
}
