package webapi

import (
	"errors"
	"sort"

	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/resultstore"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// RunStore provides access to stored benchmark run data.
type RunStore interface {
	// ListRuns returns all runs, sorted by the given field and order.
	ListRuns(sortField, order string) ([]RunSummary, error)
	// GetRun returns a single run with its records and full summary.
	GetRun(id string) (*RunDetail, error)
	// GetPivots returns the per-run pivot tables.
	GetPivots(id string) (*PivotsResponse, error)
	// Summary returns aggregate metrics across all runs.
	Summary() (*SummaryResponse, error)
}

// ResultStore adapts a resultstore.Store to the RunStore interface.
type ResultStore struct {
	store *resultstore.Store
}

// NewResultStore wraps a resultstore.Store.
func NewResultStore(store *resultstore.Store) *ResultStore {
	return &ResultStore{store: store}
}

func runToSummary(r *models.RunResult) RunSummary {
	return RunSummary{
		ID:            r.RunID,
		Models:        r.Models,
		RecordCount:   r.Summary.TotalTests,
		SuccessCount:  r.Summary.SuccessfulTests,
		AvgRetention:  r.Summary.AverageRetentionRate,
		Duration:      float64(r.DurationMs) / 1000.0,
		Timestamp:     r.Timestamp,
		VarietiesSeen: r.Summary.VarietiesTested,
	}
}

func runToDetail(r *models.RunResult) *RunDetail {
	detail := &RunDetail{
		RunSummary: runToSummary(r),
		Summary:    r.Summary,
		Records:    r.Records,
		ModelStats: r.ModelStats,
	}
	if detail.Records == nil {
		detail.Records = []models.ScoredRecord{}
	}
	return detail
}

// ListRuns returns all runs sorted by the given field and order.
func (rs *ResultStore) ListRuns(sortField, order string) ([]RunSummary, error) {
	all, err := rs.store.List()
	if err != nil {
		return nil, err
	}

	runs := make([]RunSummary, 0, len(all))
	for _, r := range all {
		runs = append(runs, runToSummary(r))
	}

	sortRuns(runs, sortField, order)
	return runs, nil
}

// GetRun returns a single run with full record details.
func (rs *ResultStore) GetRun(id string) (*RunDetail, error) {
	r, err := rs.store.Get(id)
	if err != nil {
		if errors.Is(err, resultstore.ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return runToDetail(r), nil
}

// GetPivots returns the model-by-variety and model-by-task tables for
// a run.
func (rs *ResultStore) GetPivots(id string) (*PivotsResponse, error) {
	r, err := rs.store.Get(id)
	if err != nil {
		if errors.Is(err, resultstore.ErrRunNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return &PivotsResponse{
		ModelByVariety: r.Summary.ModelByVariety,
		ModelByTask:    r.Summary.ModelByTask,
	}, nil
}

// Summary returns aggregate metrics across all runs.
func (rs *ResultStore) Summary() (*SummaryResponse, error) {
	all, err := rs.store.List()
	if err != nil {
		return nil, err
	}

	resp := &SummaryResponse{}
	if len(all) == 0 {
		return resp, nil
	}

	totalSuccess := 0
	totalRetention := 0.0
	totalDuration := 0.0

	for _, r := range all {
		resp.TotalRuns++
		resp.TotalRecords += r.Summary.TotalTests
		totalSuccess += r.Summary.SuccessfulTests
		totalRetention += r.Summary.AverageRetentionRate
		totalDuration += float64(r.DurationMs) / 1000.0
	}

	if resp.TotalRecords > 0 {
		resp.SuccessRate = float64(totalSuccess) / float64(resp.TotalRecords) * 100.0
	}
	resp.AvgRetention = totalRetention / float64(resp.TotalRuns)
	resp.AvgDuration = totalDuration / float64(resp.TotalRuns)

	return resp, nil
}

func sortRuns(runs []RunSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "retention":
			return runs[i].AvgRetention < runs[j].AvgRetention
		case "records":
			return runs[i].RecordCount < runs[j].RecordCount
		case "duration":
			return runs[i].Duration < runs[j].Duration
		default: // "timestamp" or empty
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.Slice(runs, less)
	} else {
		sort.Slice(runs, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure ResultStore satisfies RunStore.
var _ RunStore = (*ResultStore)(nil)
