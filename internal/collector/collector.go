// Package collector drives the benchmark: it asks every configured model to
// respond to every stimulus and hands the raw outcomes to the scorer.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/vendors"
)

// EventType represents the type of progress event.
type EventType string

const (
	EventRunStart         EventType = "run_start"
	EventRunComplete      EventType = "run_complete"
	EventGenerateStart    EventType = "generate_start"
	EventGenerateComplete EventType = "generate_complete"
)

// ProgressEvent is a progress update emitted while collecting.
type ProgressEvent struct {
	EventType  EventType
	Model      string
	StimulusID string
	Num        int
	Total      int
	Failed     bool
	DurationMs int64
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Option configures a Collector.
type Option func(*Collector)

// WithPacing sets the delay inserted between sequential vendor calls.
func WithPacing(d time.Duration) Option {
	return func(c *Collector) { c.pace = d }
}

// WithParallel enables per-model parallel collection with the given worker cap.
func WithParallel(workers int) Option {
	return func(c *Collector) {
		c.parallel = true
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithTimeout bounds each individual generation call.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) { c.timeout = d }
}

// Collector runs catalog × generators and accumulates outcomes.
type Collector struct {
	generators []vendors.Generator
	pace       time.Duration
	timeout    time.Duration
	parallel   bool
	workers    int

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// New creates a Collector over the given generators.
func New(generators []vendors.Generator, opts ...Option) *Collector {
	c := &Collector{
		generators: generators,
		workers:    4,
		timeout:    2 * time.Minute,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnProgress registers a progress listener.
func (c *Collector) OnProgress(listener ProgressListener) {
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.listeners = append(c.listeners, listener)
}

func (c *Collector) notify(event ProgressEvent) {
	c.progressMu.Lock()
	listeners := make([]ProgressListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Collect produces one GenerationOutcome per (model, stimulus) pair, in
// catalog order within each model. Vendor failures become outcomes with Err
// set; they never abort the batch. Only ctx cancellation returns an error.
func (c *Collector) Collect(ctx context.Context, cat *catalog.Catalog) ([]models.GenerationOutcome, error) {
	stimuli := cat.All()
	total := len(stimuli) * len(c.generators)
	c.notify(ProgressEvent{EventType: EventRunStart, Total: total})

	start := time.Now()
	var outcomes []models.GenerationOutcome
	var err error
	if c.parallel {
		outcomes, err = c.collectParallel(ctx, stimuli)
	} else {
		outcomes, err = c.collectSequential(ctx, stimuli)
	}
	if err != nil {
		return nil, err
	}

	c.notify(ProgressEvent{
		EventType:  EventRunComplete,
		Total:      total,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return outcomes, nil
}

func (c *Collector) collectSequential(ctx context.Context, stimuli []catalog.Stimulus) ([]models.GenerationOutcome, error) {
	outcomes := make([]models.GenerationOutcome, 0, len(stimuli)*len(c.generators))
	num := 0
	total := len(stimuli) * len(c.generators)

	for _, gen := range c.generators {
		for _, stim := range stimuli {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			num++
			outcomes = append(outcomes, c.generate(ctx, gen, stim, num, total))

			if c.pace > 0 && num < total {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(c.pace):
				}
			}
		}
	}
	return outcomes, nil
}

// collectParallel runs one goroutine per model; stimuli within a model stay
// sequential so each vendor sees at most one in-flight request.
func (c *Collector) collectParallel(ctx context.Context, stimuli []catalog.Stimulus) ([]models.GenerationOutcome, error) {
	perModel := make([][]models.GenerationOutcome, len(c.generators))
	total := len(stimuli) * len(c.generators)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)

	for i, gen := range c.generators {
		eg.Go(func() error {
			modelOutcomes := make([]models.GenerationOutcome, 0, len(stimuli))
			for j, stim := range stimuli {
				if err := egCtx.Err(); err != nil {
					return err
				}
				num := i*len(stimuli) + j + 1
				modelOutcomes = append(modelOutcomes, c.generate(egCtx, gen, stim, num, total))
			}
			perModel[i] = modelOutcomes
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	outcomes := make([]models.GenerationOutcome, 0, total)
	for _, mo := range perModel {
		outcomes = append(outcomes, mo...)
	}
	return outcomes, nil
}

func (c *Collector) generate(ctx context.Context, gen vendors.Generator, stim catalog.Stimulus, num, total int) models.GenerationOutcome {
	c.notify(ProgressEvent{
		EventType:  EventGenerateStart,
		Model:      gen.Name(),
		StimulusID: stim.ID,
		Num:        num,
		Total:      total,
	})

	genCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := gen.Generate(genCtx, Prompt(stim))

	outcome := models.GenerationOutcome{
		Model:      gen.Name(),
		StimulusID: stim.ID,
	}
	if err != nil {
		outcome.Err = err.Error()
	} else {
		outcome.OutputText = &text
	}

	c.notify(ProgressEvent{
		EventType:  EventGenerateComplete,
		Model:      gen.Name(),
		StimulusID: stim.ID,
		Num:        num,
		Total:      total,
		Failed:     outcome.Failed(),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return outcome
}

// Prompt renders the instruction sent to a model for a stimulus.
func Prompt(stim catalog.Stimulus) string {
	switch stim.Task {
	case catalog.TaskExplain:
		return fmt.Sprintf("Explain this text while keeping its dialectal style: %s", stim.Text)
	case catalog.TaskContinue:
		return fmt.Sprintf("Continue this text in the same dialectal style: %s", stim.Text)
	default:
		return fmt.Sprintf("Paraphrase or continue this text in the same dialectal style: %s", stim.Text)
	}
}
