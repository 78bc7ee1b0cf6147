package dataset

import (
	"fmt"
	"strings"

	"github.com/dialectlab/retain/internal/catalog"
)

// markerSeparator joins the expected markers inside a single CSV cell.
const markerSeparator = ";"

// LoadStimuli reads a stimuli CSV (columns: id, variety, task, text,
// markers) into a validated catalog. Markers are ";"-separated within the
// cell; surrounding whitespace on each marker is trimmed.
func LoadStimuli(path string) (*catalog.Catalog, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	stimuli := make([]catalog.Stimulus, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		if err := requireColumns(row, rowNum, "id", "variety", "task", "text", "markers"); err != nil {
			return nil, err
		}
		stimuli = append(stimuli, catalog.Stimulus{
			ID:              row["id"],
			Variety:         row["variety"],
			Task:            catalog.Task(row["task"]),
			Text:            row["text"],
			ExpectedMarkers: splitMarkers(row["markers"]),
		})
	}

	cat, err := catalog.New(stimuli)
	if err != nil {
		return nil, fmt.Errorf("stimuli file %s: %w", path, err)
	}
	return cat, nil
}

// SaveStimuli writes a catalog back out in the stimuli CSV shape.
func SaveStimuli(path string, cat *catalog.Catalog) error {
	rows := make([][]string, 0, cat.Len())
	for _, s := range cat.All() {
		rows = append(rows, []string{
			s.ID, s.Variety, string(s.Task), s.Text,
			strings.Join(s.ExpectedMarkers, markerSeparator),
		})
	}
	return writeCSV(path, []string{"id", "variety", "task", "text", "markers"}, rows)
}

func splitMarkers(cell string) []string {
	parts := strings.Split(cell, markerSeparator)
	markers := make([]string, 0, len(parts))
	for _, p := range parts {
		if m := strings.TrimSpace(p); m != "" {
			markers = append(markers, m)
		}
	}
	return markers
}
