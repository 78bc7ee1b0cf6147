package models

import (
	"strings"
	"time"

	"github.com/dialectlab/retain/internal/statistics"
)

// GenerationOutcome is the raw result of asking one model to respond to one
// stimulus. It is produced by the collection layer and never mutated after.
type GenerationOutcome struct {
	Model      string `json:"model"`
	StimulusID string `json:"stimulus_id"`
	// OutputText is nil when generation did not produce text.
	OutputText *string `json:"output_text"`
	// Err holds the failure description when generation did not succeed.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the outcome represents a generation failure.
func (o *GenerationOutcome) Failed() bool {
	return o.Err != "" || o.OutputText == nil
}

// ScoredRecord is one scored (model, stimulus) pair.
type ScoredRecord struct {
	Model           string    `json:"model"`
	Variety         string    `json:"variety"`
	Task            string    `json:"task"`
	InputText       string    `json:"input_text"`
	OutputText      string    `json:"output_text"`
	ExpectedMarkers []string  `json:"expected_markers"`
	FoundMarkers    []string  `json:"found_markers"`
	RetentionRate   float64   `json:"retention_rate"`
	ResponseLength  int       `json:"response_length"`
	Success         bool      `json:"success"`
	Timestamp       time.Time `json:"timestamp"`
}

// SuccessValue returns Success as a float64 so it can be averaged in pivots.
func (r *ScoredRecord) SuccessValue() float64 {
	if r.Success {
		return 1.0
	}
	return 0.0
}

// InputLength is the whitespace-delimited word count of the input text.
func (r *ScoredRecord) InputLength() int {
	return len(strings.Fields(r.InputText))
}

// Summary holds the aggregate statistics over a set of scored records.
type Summary struct {
	TotalTests           int                `json:"total_tests"`
	SuccessfulTests      int                `json:"successful_tests"`
	ModelsTested         int                `json:"models_tested"`
	VarietiesTested      int                `json:"varieties_tested"`
	AverageRetentionRate float64            `json:"average_retention_rate"`
	ModelPerformance     map[string]float64 `json:"model_performance"`
	VarietyDifficulty    map[string]float64 `json:"variety_difficulty"`
	ModelByVariety       PivotTable         `json:"model_by_variety"`
	ModelByTask          PivotTable         `json:"model_by_task"`
}

// PivotTable is a rectangular two-key grouped aggregate. Every (row, column)
// combination is present in Cells, with 0 filling combinations that had no
// records.
type PivotTable struct {
	Rows    []string                      `json:"rows"`
	Columns []string                      `json:"columns"`
	Cells   map[string]map[string]float64 `json:"cells"`
}

// Value returns the cell at (row, col), or 0 when the combination is absent.
func (t *PivotTable) Value(row, col string) float64 {
	if r, ok := t.Cells[row]; ok {
		return r[col]
	}
	return 0.0
}

// RunResult is one complete benchmark run: the scored records plus the
// summary computed from them, as persisted by the result store.
type RunResult struct {
	RunID      string                 `json:"run_id"`
	Timestamp  time.Time              `json:"timestamp"`
	Models     []string               `json:"models"`
	Records    []ScoredRecord         `json:"records"`
	Summary    Summary                `json:"summary"`
	ModelStats map[string]*ModelStats `json:"model_stats,omitempty"`
	DurationMs int64                  `json:"duration_ms"`
}

// ModelStats holds descriptive statistics for one model's records.
type ModelStats struct {
	Records           int     `json:"records"`
	MeanRetention     float64 `json:"mean_retention"`
	MinRetention      float64 `json:"min_retention"`
	MaxRetention      float64 `json:"max_retention"`
	StdDevRetention   float64 `json:"std_dev_retention"`
	CI95Lo            float64 `json:"ci95_lo"`
	CI95Hi            float64 `json:"ci95_hi"`
	MeanResponseWords float64 `json:"mean_response_words"`
	MeanLengthRatio   float64 `json:"mean_length_ratio"`
	MeanTokenOverlap  float64 `json:"mean_token_overlap"`

	// Bootstrap percentile CI over retention rates (populated when the
	// model has at least 2 records).
	BootstrapCI *statistics.ConfidenceInterval `json:"bootstrap_ci,omitempty"`
}
