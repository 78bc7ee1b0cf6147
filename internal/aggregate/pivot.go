package aggregate

import (
	"sort"

	"github.com/dialectlab/retain/internal/metrics"
	"github.com/dialectlab/retain/internal/models"
)

// KeyFn extracts a grouping label from a record.
type KeyFn func(*models.ScoredRecord) string

// ValueFn extracts the numeric field to average.
type ValueFn func(*models.ScoredRecord) float64

// Pivot builds a rectangular grouped-mean table: rows × columns of
// mean(valueFn) over the records in each cell. Combinations with no records
// are filled with 0 rather than omitted, so the table always renders as a
// complete grid even over partial data. Row and column labels are sorted.
func Pivot(records []models.ScoredRecord, rowKey, colKey KeyFn, valueFn ValueFn) models.PivotTable {
	cells := map[string]map[string][]float64{}
	rowSet := map[string]bool{}
	colSet := map[string]bool{}

	for i := range records {
		r := &records[i]
		row, col := rowKey(r), colKey(r)
		rowSet[row] = true
		colSet[col] = true
		if cells[row] == nil {
			cells[row] = map[string][]float64{}
		}
		cells[row][col] = append(cells[row][col], valueFn(r))
	}

	table := models.PivotTable{
		Rows:    sortedKeys(rowSet),
		Columns: sortedKeys(colSet),
		Cells:   make(map[string]map[string]float64, len(rowSet)),
	}
	for _, row := range table.Rows {
		table.Cells[row] = make(map[string]float64, len(table.Columns))
		for _, col := range table.Columns {
			table.Cells[row][col] = metrics.Mean(cells[row][col])
		}
	}
	return table
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
