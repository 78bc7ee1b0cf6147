package spinner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer

	s := Start(&buf, "working")
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("almost done")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	require.Contains(t, out, "working")
	require.Contains(t, out, "almost done")
	require.True(t, strings.HasSuffix(out, "\r"), "spinner should clear the line on stop")
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer

	s := Start(&buf, "working")
	s.Stop()
	s.Stop()
}
