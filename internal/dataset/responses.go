package dataset

import (
	"strconv"

	"github.com/dialectlab/retain/internal/models"
)

// LoadResponses reads a raw responses CSV (columns: model, stimulus_id,
// output_text, error) into generation outcomes. A row with a non-empty
// error column, or an empty output, is a failed outcome.
func LoadResponses(path string) ([]models.GenerationOutcome, error) {
	rows, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	outcomes := make([]models.GenerationOutcome, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		if err := requireColumns(row, rowNum, "model", "stimulus_id", "output_text"); err != nil {
			return nil, err
		}
		o := models.GenerationOutcome{
			Model:      row["model"],
			StimulusID: row["stimulus_id"],
			Err:        row["error"],
		}
		if o.Err == "" && row["output_text"] != "" {
			text := row["output_text"]
			o.OutputText = &text
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// SaveResponses writes generation outcomes in the responses CSV shape.
func SaveResponses(path string, outcomes []models.GenerationOutcome) error {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		text := ""
		if o.OutputText != nil {
			text = *o.OutputText
		}
		rows = append(rows, []string{o.Model, o.StimulusID, text, o.Err})
	}
	return writeCSV(path, []string{"model", "stimulus_id", "output_text", "error"}, rows)
}

// SaveScoredRecords writes scored records in the flat CSV shape the
// dashboard's offline path consumes.
func SaveScoredRecords(path string, records []models.ScoredRecord) error {
	header := []string{
		"model", "variety", "task", "input_text", "output_text",
		"retention_rate", "response_length", "success",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Model, r.Variety, r.Task, r.InputText, r.OutputText,
			strconv.FormatFloat(r.RetentionRate, 'f', -1, 64),
			strconv.Itoa(r.ResponseLength),
			strconv.FormatBool(r.Success),
		})
	}
	return writeCSV(path, header, rows)
}
