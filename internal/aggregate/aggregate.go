// Package aggregate reduces scored records into summary statistics and
// rectangular pivot tables for reporting and visualization.
package aggregate

import (
	"github.com/dialectlab/retain/internal/metrics"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/statistics"
)

// Summarize computes the full summary over a multiset of records. The input
// may be unsorted and may carry duplicate stimulus ids across runs; every
// record counts once. An empty input yields a zeroed summary, not an error.
func Summarize(records []models.ScoredRecord) models.Summary {
	s := models.Summary{
		ModelPerformance:  map[string]float64{},
		VarietyDifficulty: map[string]float64{},
		ModelByVariety:    emptyTable(),
		ModelByTask:       emptyTable(),
	}
	if len(records) == 0 {
		return s
	}

	retention := make([]float64, 0, len(records))
	byModel := map[string][]float64{}
	byVariety := map[string][]float64{}

	for i := range records {
		r := &records[i]
		retention = append(retention, r.RetentionRate)
		byModel[r.Model] = append(byModel[r.Model], r.RetentionRate)
		byVariety[r.Variety] = append(byVariety[r.Variety], r.RetentionRate)
		if r.Success {
			s.SuccessfulTests++
		}
	}

	s.TotalTests = len(records)
	s.ModelsTested = len(byModel)
	s.VarietiesTested = len(byVariety)
	s.AverageRetentionRate = metrics.Mean(retention)

	for model, rates := range byModel {
		s.ModelPerformance[model] = metrics.Mean(rates)
	}
	for variety, rates := range byVariety {
		s.VarietyDifficulty[variety] = metrics.Mean(rates)
	}

	s.ModelByVariety = Pivot(records,
		func(r *models.ScoredRecord) string { return r.Model },
		func(r *models.ScoredRecord) string { return r.Variety },
		func(r *models.ScoredRecord) float64 { return r.RetentionRate })
	s.ModelByTask = Pivot(records,
		func(r *models.ScoredRecord) string { return r.Model },
		func(r *models.ScoredRecord) string { return r.Task },
		func(r *models.ScoredRecord) float64 { return r.SuccessValue() })

	return s
}

// PerModelStats computes descriptive statistics for each model present in
// the records: retention spread, a normal-approximation 95% CI, and the
// length and overlap measures carried over from the processing pipeline.
func PerModelStats(records []models.ScoredRecord) map[string]*models.ModelStats {
	byModel := map[string][]*models.ScoredRecord{}
	for i := range records {
		r := &records[i]
		byModel[r.Model] = append(byModel[r.Model], r)
	}
	if len(byModel) == 0 {
		return nil
	}

	out := make(map[string]*models.ModelStats, len(byModel))
	for model, recs := range byModel {
		rates := make([]float64, len(recs))
		words := make([]float64, len(recs))
		ratios := make([]float64, 0, len(recs))
		overlaps := make([]float64, len(recs))
		for i, r := range recs {
			rates[i] = r.RetentionRate
			words[i] = float64(r.ResponseLength)
			if in := r.InputLength(); in > 0 {
				ratios = append(ratios, float64(r.ResponseLength)/float64(in))
			}
			overlaps[i] = metrics.TokenOverlap(r.InputText, r.OutputText)
		}

		lo, hi := metrics.ConfidenceInterval95(rates)
		var bootCI *statistics.ConfidenceInterval
		if len(rates) >= 2 {
			ci := statistics.BootstrapCI(rates, 0.95)
			bootCI = &ci
		}
		out[model] = &models.ModelStats{
			Records:           len(recs),
			MeanRetention:     metrics.Mean(rates),
			MinRetention:      metrics.Min(rates),
			MaxRetention:      metrics.Max(rates),
			StdDevRetention:   metrics.StdDev(rates),
			CI95Lo:            lo,
			CI95Hi:            hi,
			MeanResponseWords: metrics.Mean(words),
			MeanLengthRatio:   metrics.Mean(ratios),
			MeanTokenOverlap:  metrics.Mean(overlaps),
			BootstrapCI:       bootCI,
		}
	}
	return out
}

func emptyTable() models.PivotTable {
	return models.PivotTable{
		Rows:    []string{},
		Columns: []string{},
		Cells:   map[string]map[string]float64{},
	}
}
