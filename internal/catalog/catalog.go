// Package catalog holds the fixed set of test stimuli used by a benchmark
// run: the source utterances, their language variety, the task each one
// exercises, and the markers a faithful response is expected to retain.
package catalog

import (
	"fmt"
	"strings"
)

// Task identifies what the model is asked to do with a stimulus.
type Task string

const (
	TaskParaphrase Task = "paraphrase"
	TaskExplain    Task = "explain"
	TaskContinue   Task = "continue"
)

// Stimulus is one test case. Variety and Task are opaque labels downstream;
// adding a new variety never requires touching the scorer or aggregator.
type Stimulus struct {
	ID              string   `yaml:"id" json:"id"`
	Variety         string   `yaml:"variety" json:"variety"`
	Task            Task     `yaml:"task" json:"task"`
	Text            string   `yaml:"text" json:"text"`
	ExpectedMarkers []string `yaml:"expected_markers" json:"expected_markers"`
}

// Catalog is an immutable, ordered collection of stimuli.
type Catalog struct {
	stimuli []Stimulus
	byID    map[string]int
}

// New builds a catalog from the given stimuli, validating each one. A
// stimulus with no expected markers is rejected here so the scorer never
// sees a zero denominator.
func New(stimuli []Stimulus) (*Catalog, error) {
	c := &Catalog{
		stimuli: make([]Stimulus, len(stimuli)),
		byID:    make(map[string]int, len(stimuli)),
	}
	copy(c.stimuli, stimuli)

	for i, s := range c.stimuli {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("stimulus %d: id is required", i)
		}
		if strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("stimulus %q: text is required", s.ID)
		}
		if len(s.ExpectedMarkers) == 0 {
			return nil, fmt.Errorf("stimulus %q: expected_markers must not be empty", s.ID)
		}
		for _, m := range s.ExpectedMarkers {
			if m == "" {
				return nil, fmt.Errorf("stimulus %q: empty marker", s.ID)
			}
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stimulus id %q", s.ID)
		}
		c.byID[s.ID] = i
	}

	return c, nil
}

// All returns the stimuli in declaration order. The returned slice is a
// copy; callers cannot mutate the catalog through it.
func (c *Catalog) All() []Stimulus {
	out := make([]Stimulus, len(c.stimuli))
	copy(out, c.stimuli)
	return out
}

// Get returns the stimulus with the given id.
func (c *Catalog) Get(id string) (Stimulus, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Stimulus{}, false
	}
	return c.stimuli[i], true
}

// Len returns the number of stimuli.
func (c *Catalog) Len() int {
	return len(c.stimuli)
}

// Varieties returns the distinct variety labels in first-seen order.
func (c *Catalog) Varieties() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.stimuli {
		if !seen[s.Variety] {
			seen[s.Variety] = true
			out = append(out, s.Variety)
		}
	}
	return out
}
