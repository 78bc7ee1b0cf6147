package webapi

import (
	"time"

	"github.com/dialectlab/retain/internal/models"
)

// RunSummary is the API response for a single run in the list.
type RunSummary struct {
	ID            string    `json:"id"`
	Models        []string  `json:"models"`
	RecordCount   int       `json:"recordCount"`
	SuccessCount  int       `json:"successCount"`
	AvgRetention  float64   `json:"avgRetention"`
	Duration      float64   `json:"duration"`
	Timestamp     time.Time `json:"timestamp"`
	VarietiesSeen int       `json:"varietiesSeen"`
}

// RunDetail is the API response for a single run with the full summary
// and per-record results.
type RunDetail struct {
	RunSummary
	Summary    models.Summary                `json:"summary"`
	Records    []models.ScoredRecord         `json:"records"`
	ModelStats map[string]*models.ModelStats `json:"modelStats,omitempty"`
}

// PivotsResponse carries the two pivot tables for a run.
type PivotsResponse struct {
	ModelByVariety models.PivotTable `json:"modelByVariety"`
	ModelByTask    models.PivotTable `json:"modelByTask"`
}

// SummaryResponse is the aggregate KPI response across all runs.
type SummaryResponse struct {
	TotalRuns    int     `json:"totalRuns"`
	TotalRecords int     `json:"totalRecords"`
	SuccessRate  float64 `json:"successRate"`
	AvgRetention float64 `json:"avgRetention"`
	AvgDuration  float64 `json:"avgDuration"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
