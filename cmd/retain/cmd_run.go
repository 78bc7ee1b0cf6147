package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/aggregate"
	"github.com/dialectlab/retain/internal/catalog"
	"github.com/dialectlab/retain/internal/collector"
	"github.com/dialectlab/retain/internal/config"
	"github.com/dialectlab/retain/internal/dataset"
	"github.com/dialectlab/retain/internal/models"
	"github.com/dialectlab/retain/internal/reporting"
	"github.com/dialectlab/retain/internal/resultstore"
	"github.com/dialectlab/retain/internal/scoring"
	"github.com/dialectlab/retain/internal/spinner"
	"github.com/dialectlab/retain/internal/vendors"
)

var (
	catalogPath    string
	outputPath     string
	reportPath     string
	resultsDir     string
	verbose        bool
	parallel       bool
	workers        int
	paceMS         int
	timeoutSec     int
	compress       bool
	modelOverrides []string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "Run a retention benchmark",
		Long: `Run a retention benchmark against one or more model vendors.

With no config file, a single Gemini model is run against the builtin
stimulus catalog. Each vendor's API key is read from its environment
variable (e.g. GEMINI_API_KEY); use "retain keys" to set them up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Stimulus catalog file (.yaml or .csv, default: builtin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Extra output JSON file for the run result")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a markdown report to this path")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory for stored run results (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-generation progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Query vendors concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent vendor workers (default: 4, requires --parallel)")
	cmd.Flags().IntVar(&paceMS, "pace", 0, "Delay in milliseconds between sequential generations")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Per-generation timeout in seconds (overrides config)")
	cmd.Flags().BoolVar(&compress, "compress", false, "Store the run result gzip-compressed")
	cmd.Flags().StringArrayVar(&modelOverrides, "model", nil, `Model to run as "vendor" or "vendor=model-id" (overrides config, can be repeated)`)

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(args)
	if err != nil {
		return err
	}

	// CLI flags override config
	if parallel {
		cfg.Parallel = true
	}
	if workers > 0 {
		cfg.MaxWorkers = workers
	}
	if paceMS > 0 {
		cfg.PaceMS = paceMS
	}
	if timeoutSec > 0 {
		cfg.TimeoutSeconds = timeoutSec
	}
	if resultsDir != "" {
		cfg.ResultsDir = resultsDir
	}
	if compress {
		cfg.CompressResults = true
	}
	if len(modelOverrides) > 0 {
		specs, err := parseModelOverrides(modelOverrides)
		if err != nil {
			return err
		}
		cfg.Models = specs
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	generators := make([]vendors.Generator, 0, len(cfg.Models))
	for _, spec := range cfg.Models {
		gen, err := vendors.Create(spec.Vendor, spec.Params)
		if err != nil {
			return fmt.Errorf("setting up %s: %w", spec.Vendor, err)
		}
		generators = append(generators, gen)
	}

	opts := []collector.Option{
		collector.WithTimeout(cfg.Timeout()),
	}
	if cfg.Parallel {
		opts = append(opts, collector.WithParallel(cfg.MaxWorkers))
	}
	if cfg.PaceMS > 0 {
		opts = append(opts, collector.WithPacing(cfg.Pace()))
	}

	coll := collector.New(generators, opts...)
	var spin *spinner.Spinner
	if verbose {
		coll.OnProgress(verboseProgressListener)
	} else {
		spin = spinner.Start(os.Stderr, "collecting responses...")
		coll.OnProgress(spinnerProgressListener(spin))
	}

	modelNames := make([]string, 0, len(generators))
	for _, g := range generators {
		modelNames = append(modelNames, g.Name())
	}

	fmt.Printf("Running retention benchmark: %s\n", cfg.Name)
	fmt.Printf("Models:  %s\n", strings.Join(modelNames, ", "))
	fmt.Printf("Stimuli: %d (%s)\n", cat.Len(), strings.Join(cat.Varieties(), ", "))
	if cfg.Parallel {
		w := cfg.MaxWorkers
		if w <= 0 {
			w = 4
		}
		fmt.Printf("Parallel: %d workers\n", w)
	}
	fmt.Println()

	start := time.Now()
	outcomes, err := coll.Collect(context.Background(), cat)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return fmt.Errorf("benchmark failed: %w", err)
	}

	scorer := scoring.New()
	records := make([]models.ScoredRecord, 0, len(outcomes))
	failures := 0
	for _, outcome := range outcomes {
		stim, ok := cat.Get(outcome.StimulusID)
		if !ok {
			return fmt.Errorf("outcome references unknown stimulus %q", outcome.StimulusID)
		}
		if outcome.Failed() {
			failures++
		}
		records = append(records, scorer.Score(stim, outcome))
	}

	run := &models.RunResult{
		RunID:      uuid.NewString(),
		Timestamp:  start.UTC(),
		Models:     modelNames,
		Records:    records,
		Summary:    aggregate.Summarize(records),
		ModelStats: aggregate.PerModelStats(records),
		DurationMs: time.Since(start).Milliseconds(),
	}

	printRunSummary(run)

	store := resultstore.New(cfg.ResultsDir)
	path, err := store.Save(run, cfg.CompressResults)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("\nRun saved to: %s\n", path)

	if outputPath != "" {
		if err := saveRunJSON(run, outputPath); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Printf("Results saved to: %s\n", outputPath)
	}

	if reportPath != "" {
		if err := os.WriteFile(reportPath, []byte(reporting.Markdown(run)), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to: %s\n", reportPath)
	}

	if failures > 0 {
		return &GenerationFailureError{
			Message: fmt.Sprintf("benchmark completed with %d failed generation(s)", failures),
		}
	}
	return nil
}

func loadRunConfig(args []string) (*config.RunConfig, error) {
	if len(args) == 0 {
		return config.Default(), nil
	}
	cfg, err := config.Load(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadCatalog resolves the stimulus catalog: the --catalog flag wins,
// then the config file, then the builtin set. CSV files go through the
// dataset loader, everything else is parsed as YAML.
func loadCatalog(cfg *config.RunConfig) (*catalog.Catalog, error) {
	path := catalogPath
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		return catalog.Builtin(), nil
	}
	if strings.HasSuffix(path, ".csv") {
		return dataset.LoadStimuli(path)
	}
	return catalog.LoadFile(path)
}

// parseModelOverrides turns --model flags into model specs. Each value
// is "vendor" or "vendor=model-id".
func parseModelOverrides(overrides []string) ([]config.ModelSpec, error) {
	specs := make([]config.ModelSpec, 0, len(overrides))
	for _, o := range overrides {
		vendor, modelID, found := strings.Cut(o, "=")
		vendor = strings.TrimSpace(vendor)
		if vendor == "" {
			return nil, fmt.Errorf("invalid --model value %q", o)
		}
		spec := config.ModelSpec{Vendor: vendor}
		if found {
			spec.Params = map[string]any{"model": strings.TrimSpace(modelID)}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func saveRunJSON(run *models.RunResult, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func verboseProgressListener(event collector.ProgressEvent) {
	switch event.EventType {
	case collector.EventRunStart:
		fmt.Printf("Starting collection with %d generation(s)...\n\n", event.Total)
	case collector.EventGenerateStart:
		fmt.Printf("[%d/%d] %s <- %s\n", event.Num, event.Total, event.Model, event.StimulusID)
	case collector.EventGenerateComplete:
		status := "ok"
		if event.Failed {
			status = "FAILED"
		}
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("[%d/%d] %s <- %s: %s (%v)\n", event.Num, event.Total, event.Model, event.StimulusID, status, duration)
	case collector.EventRunComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("\nCollection completed in %v\n\n", duration)
	}
}

// spinnerProgressListener keeps the spinner message current with the
// collection progress.
func spinnerProgressListener(spin *spinner.Spinner) collector.ProgressListener {
	failed := 0
	return func(event collector.ProgressEvent) {
		if event.EventType != collector.EventGenerateComplete {
			return
		}
		if event.Failed {
			failed++
		}
		msg := fmt.Sprintf("collecting responses [%d/%d]", event.Num, event.Total)
		if failed > 0 {
			msg += fmt.Sprintf(" (%d failed)", failed)
		}
		spin.SetMessage(msg)
	}
}
