// Package spinner renders a single-line terminal spinner for
// long-running benchmark phases.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on a terminal. The message can be
// updated while the spinner runs, so callers can report progress through
// a benchmark without scrolling the screen.
type Spinner struct {
	w        io.Writer
	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	message string
	width   int
}

// Start begins animating the spinner with the given message on w.
func Start(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
		message: message,
		width:   len(message),
	}
	go s.run()
	return s
}

// SetMessage replaces the status text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	if len(message) > s.width {
		s.width = len(message)
	}
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. Safe to call more than
// once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}

func (s *Spinner) run() {
	i := 0
	for {
		select {
		case <-s.done:
			s.mu.Lock()
			width := s.width
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width+2)) //nolint:errcheck
			close(s.cleared)
			return
		case <-time.After(80 * time.Millisecond):
			s.mu.Lock()
			message := s.message
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
			i++
		}
	}
}
