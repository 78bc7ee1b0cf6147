package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	t.Run("header mapped rows", func(t *testing.T) {
		path := writeFile(t, "data.csv", "a,b\n1,2\n3,4\n")
		rows, err := LoadCSV(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "1", rows[0]["a"])
		require.Equal(t, "4", rows[1]["b"])
	})

	t.Run("empty file rejected", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		_, err := LoadCSV(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}

func TestStimuliRoundTrip(t *testing.T) {
	cat := catalog.Builtin()
	path := filepath.Join(t.TempDir(), "stimuli.csv")

	require.NoError(t, SaveStimuli(path, cat))

	loaded, err := LoadStimuli(path)
	require.NoError(t, err)
	require.Equal(t, cat.Len(), loaded.Len())

	orig, _ := cat.Get("aave_1")
	got, ok := loaded.Get("aave_1")
	require.True(t, ok)
	require.Equal(t, orig, got)
}

func TestLoadStimuli_MarkerTrimming(t *testing.T) {
	path := writeFile(t, "stimuli.csv",
		"id,variety,task,text,markers\ns1,AAVE,paraphrase,finna go,\" finna ; real quick ;\"\n")
	cat, err := LoadStimuli(path)
	require.NoError(t, err)

	s, ok := cat.Get("s1")
	require.True(t, ok)
	require.Equal(t, []string{"finna", "real quick"}, s.ExpectedMarkers)
}

func TestLoadStimuli_InvalidCatalog(t *testing.T) {
	// No markers at all fails catalog validation.
	path := writeFile(t, "stimuli.csv",
		"id,variety,task,text,markers\ns1,AAVE,paraphrase,text,\n")
	_, err := LoadStimuli(path)
	require.ErrorContains(t, err, "expected_markers")
}

func TestResponsesRoundTrip(t *testing.T) {
	text := "finna reply"
	outcomes := []models.GenerationOutcome{
		{Model: "gemini/flash", StimulusID: "s1", OutputText: &text},
		{Model: "cohere/command-r", StimulusID: "s2", Err: "rate limited"},
	}
	path := filepath.Join(t.TempDir(), "responses.csv")

	require.NoError(t, SaveResponses(path, outcomes))

	loaded, err := LoadResponses(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.False(t, loaded[0].Failed())
	require.Equal(t, "finna reply", *loaded[0].OutputText)

	require.True(t, loaded[1].Failed())
	require.Equal(t, "rate limited", loaded[1].Err)
	require.Nil(t, loaded[1].OutputText)
}

func TestLoadResponses_EmptyOutputIsFailure(t *testing.T) {
	path := writeFile(t, "responses.csv",
		"model,stimulus_id,output_text,error\nm1,s1,,\n")
	loaded, err := LoadResponses(path)
	require.NoError(t, err)
	require.True(t, loaded[0].Failed())
}

func TestSaveScoredRecords(t *testing.T) {
	records := []models.ScoredRecord{
		{
			Model: "a", Variety: "AAVE", Task: "paraphrase",
			InputText: "in", OutputText: "out",
			RetentionRate: 0.5, ResponseLength: 1, Success: true,
		},
	}
	path := filepath.Join(t.TempDir(), "scored.csv")
	require.NoError(t, SaveScoredRecords(path, records))

	rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "0.5", rows[0]["retention_rate"])
	require.Equal(t, "true", rows[0]["success"])
}
