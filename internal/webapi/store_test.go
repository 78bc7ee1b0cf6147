package webapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dialectlab/retain/internal/aggregate"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/resultstore"
)

func storedRun(t *testing.T, dir, id string, ts time.Time) {
	t.Helper()
	records := []models.ScoredRecord{
		{Model: "gemini/gemini-2.5-flash", Variety: "AAVE", Task: "paraphrase", ExpectedMarkers: []string{"m"}, RetentionRate: 0.5, Success: true},
		{Model: "gemini/gemini-2.5-flash", Variety: "BrEng", Task: "explain", ExpectedMarkers: []string{"m"}, RetentionRate: 1.0, Success: true},
	}
	run := &models.RunResult{
		RunID:      id,
		Timestamp:  ts,
		Models:     []string{"gemini/gemini-2.5-flash"},
		Records:    records,
		Summary:    aggregate.Summarize(records),
		DurationMs: 2000,
	}
	store := resultstore.New(dir)
	_, err := store.Save(run, false)
	require.NoError(t, err)
}

func TestResultStore(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	storedRun(t, dir, "first", base)
	storedRun(t, dir, "second", base.Add(time.Hour))

	rs := NewResultStore(resultstore.New(dir))

	t.Run("ListRuns", func(t *testing.T) {
		runs, err := rs.ListRuns("", "")
		require.NoError(t, err)
		require.Len(t, runs, 2)
		require.Equal(t, "second", runs[0].ID)
		require.Equal(t, 2, runs[0].RecordCount)
		require.InDelta(t, 0.75, runs[0].AvgRetention, 1e-9)
	})

	t.Run("GetRun", func(t *testing.T) {
		detail, err := rs.GetRun("first")
		require.NoError(t, err)
		require.Len(t, detail.Records, 2)
		require.Equal(t, 2, detail.Summary.TotalTests)
	})

	t.Run("GetRun not found", func(t *testing.T) {
		_, err := rs.GetRun("ghost")
		require.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("GetPivots", func(t *testing.T) {
		pivots, err := rs.GetPivots("first")
		require.NoError(t, err)
		require.Equal(t, []string{"AAVE", "BrEng"}, pivots.ModelByVariety.Columns)
		require.InDelta(t, 0.5, pivots.ModelByVariety.Value("gemini/gemini-2.5-flash", "AAVE"), 1e-9)
	})

	t.Run("Summary", func(t *testing.T) {
		summary, err := rs.Summary()
		require.NoError(t, err)
		require.Equal(t, 2, summary.TotalRuns)
		require.Equal(t, 4, summary.TotalRecords)
		require.InDelta(t, 100.0, summary.SuccessRate, 1e-9)
		require.InDelta(t, 0.75, summary.AvgRetention, 1e-9)
	})
}

func TestResultStore_Empty(t *testing.T) {
	rs := NewResultStore(resultstore.New(t.TempDir()))

	summary, err := rs.Summary()
	require.NoError(t, err)
	require.Zero(t, summary.TotalRuns)

	runs, err := rs.ListRuns("", "")
	require.NoError(t, err)
	require.Empty(t, runs)
}
