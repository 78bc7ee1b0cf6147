// Package scoring turns raw generation outcomes into scored records by
// measuring how many of a stimulus's expected markers survived in the
// model's output.
package scoring

import (
	"strings"
	"time"

	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/models"
)

// Scorer computes retention scores. It is stateless and safe for
// concurrent use; Clock exists so tests can pin record timestamps.
type Scorer struct {
	Clock func() time.Time
}

// New returns a Scorer using the wall clock.
func New() *Scorer {
	return &Scorer{Clock: time.Now}
}

// Score converts one (stimulus, outcome) pair into a ScoredRecord. It is
// total: generation failures become success=false records, never errors.
//
// A marker counts as found when it appears as a case-insensitive substring
// of the output. The check is intentionally not word-boundary aware, so a
// multi-word marker like "real quick" must appear verbatim. Found markers
// keep the order they have in the stimulus, not their position in the text.
func (s *Scorer) Score(stim catalog.Stimulus, outcome models.GenerationOutcome) models.ScoredRecord {
	rec := models.ScoredRecord{
		Model:           outcome.Model,
		Variety:         stim.Variety,
		Task:            string(stim.Task),
		InputText:       stim.Text,
		ExpectedMarkers: stim.ExpectedMarkers,
		FoundMarkers:    []string{},
		Timestamp:       s.now(),
	}

	if outcome.Failed() {
		msg := outcome.Err
		if msg == "" {
			msg = "no response generated"
		}
		rec.OutputText = "Error: " + msg
		return rec
	}

	output := *outcome.OutputText
	outputLower := strings.ToLower(output)
	for _, marker := range stim.ExpectedMarkers {
		if strings.Contains(outputLower, strings.ToLower(marker)) {
			rec.FoundMarkers = append(rec.FoundMarkers, marker)
		}
	}

	rec.OutputText = output
	rec.RetentionRate = float64(len(rec.FoundMarkers)) / float64(len(stim.ExpectedMarkers))
	rec.ResponseLength = len(strings.Fields(output))
	rec.Success = true
	return rec
}

func (s *Scorer) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
