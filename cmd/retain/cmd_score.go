package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/aggregate"
	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/dataset"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/scoring"
)

func newScoreCommand() *cobra.Command {
	var (
		responsesPath string
		catPath       string
		outPath       string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score previously collected responses without calling any vendor",
		Long: `Score a CSV of previously collected model responses against a
stimulus catalog and print the aggregate summary.

The responses file needs the columns model, stimulus_id, output_text
and error. No network calls are made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if responsesPath == "" {
				return fmt.Errorf("--responses is required")
			}

			cat, err := loadScoreCatalog(catPath)
			if err != nil {
				return err
			}

			outcomes, err := dataset.LoadResponses(responsesPath)
			if err != nil {
				return fmt.Errorf("failed to load responses: %w", err)
			}

			scorer := scoring.New()
			records := make([]models.ScoredRecord, 0, len(outcomes))
			for _, outcome := range outcomes {
				stim, ok := cat.Get(outcome.StimulusID)
				if !ok {
					return fmt.Errorf("response references unknown stimulus %q", outcome.StimulusID)
				}
				records = append(records, scorer.Score(stim, outcome))
			}

			summary := aggregate.Summarize(records)
			run := &models.RunResult{
				Records: records,
				Summary: summary,
			}
			printRunSummary(run)

			if outPath != "" {
				if err := saveScored(records, summary, outPath); err != nil {
					return err
				}
				fmt.Printf("Scored records saved to: %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&responsesPath, "responses", "", "CSV of collected responses (required)")
	cmd.Flags().StringVar(&catPath, "catalog", "", "Stimulus catalog file (.yaml or .csv, default: builtin)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write scored records to this path (.csv or .json)")
	return cmd
}

func loadScoreCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	if strings.HasSuffix(path, ".csv") {
		return dataset.LoadStimuli(path)
	}
	return catalog.LoadFile(path)
}

func saveScored(records []models.ScoredRecord, summary models.Summary, path string) error {
	if strings.HasSuffix(path, ".csv") {
		return dataset.SaveScoredRecords(path, records)
	}
	payload := struct {
		Records []models.ScoredRecord `json:"records"`
		Summary models.Summary        `json:"summary"`
	}{Records: records, Summary: summary}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
