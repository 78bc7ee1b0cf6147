package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/models"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func testStimulus() catalog.Stimulus {
	return catalog.Stimulus{
		ID:              "aave_1",
		Variety:         "AAVE",
		Task:            catalog.TaskParaphrase,
		Text:            "Yo, I'm finna go to the store real quick, you want anything?",
		ExpectedMarkers: []string{"finna", "yo", "real quick"},
	}
}

func successOutcome(text string) models.GenerationOutcome {
	return models.GenerationOutcome{
		Model:      "gemini/gemini-2.5-flash",
		StimulusID: "aave_1",
		OutputText: &text,
	}
}

func TestScore_AllMarkersRetained(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), successOutcome("Yo, I'm finna head out real quick."))

	require.True(t, rec.Success)
	require.Equal(t, []string{"finna", "yo", "real quick"}, rec.FoundMarkers)
	require.Equal(t, 1.0, rec.RetentionRate)
	require.Equal(t, "AAVE", rec.Variety)
	require.Equal(t, "paraphrase", rec.Task)
	require.Equal(t, fixedClock(), rec.Timestamp)
}

func TestScore_CaseInsensitive(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), successOutcome("YO, I'm FINNA go Real Quick"))

	require.Equal(t, []string{"finna", "yo", "real quick"}, rec.FoundMarkers)
	require.Equal(t, 1.0, rec.RetentionRate)
}

func TestScore_PartialRetention(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), successOutcome("yo, I'm heading to the store."))

	require.True(t, rec.Success)
	require.Equal(t, []string{"yo"}, rec.FoundMarkers)
	require.InDelta(t, 1.0/3.0, rec.RetentionRate, 1e-9)
}

func TestScore_MultiWordMarkerNeedsVerbatimMatch(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	// "real" and "quick" both appear but not adjacently.
	rec := s.Score(testStimulus(), successOutcome("a real trip, but quick"))

	require.NotContains(t, rec.FoundMarkers, "real quick")
}

func TestScore_MarkerOrderFollowsStimulus(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	// Output mentions markers in reverse order of the stimulus list.
	rec := s.Score(testStimulus(), successOutcome("real quick, yo, finna"))

	require.Equal(t, []string{"finna", "yo", "real quick"}, rec.FoundMarkers)
}

func TestScore_ResponseLengthIsWordCount(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), successOutcome("one two   three\nfour"))

	require.Equal(t, 4, rec.ResponseLength)
}

func TestScore_FailedGeneration(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), models.GenerationOutcome{
		Model:      "mistral/mistral-large-latest",
		StimulusID: "aave_1",
		Err:        "rate limited",
	})

	require.False(t, rec.Success)
	require.Equal(t, "Error: rate limited", rec.OutputText)
	require.Equal(t, []string{}, rec.FoundMarkers)
	require.Zero(t, rec.RetentionRate)
	require.Zero(t, rec.ResponseLength)
}

func TestScore_NilOutputWithoutError(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	rec := s.Score(testStimulus(), models.GenerationOutcome{
		Model:      "gemini/gemini-2.5-flash",
		StimulusID: "aave_1",
	})

	require.False(t, rec.Success)
	require.Equal(t, "Error: no response generated", rec.OutputText)
}

func TestScore_SuccessIndependentOfRetention(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	// A fluent response that drops every marker still counts as a success.
	rec := s.Score(testStimulus(), successOutcome("I will be going to the shop shortly."))

	require.True(t, rec.Success)
	require.Zero(t, rec.RetentionRate)
	require.Empty(t, rec.FoundMarkers)
}

func TestScore_Idempotent(t *testing.T) {
	s := &Scorer{Clock: fixedClock}
	out := successOutcome("yo, finna go real quick")

	first := s.Score(testStimulus(), out)
	second := s.Score(testStimulus(), out)
	require.Equal(t, first, second)
}
