// Package resultstore persists benchmark runs as JSON files in a results
// directory and reads them back for the dashboard and CLI.
package resultstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/dialectlab/retain/internal/models"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// Store reads and writes RunResult files under a directory. Files may be
// plain ".json" or gzip-compressed ".json.gz".
type Store struct {
	dir string

	mu     sync.RWMutex
	runs   map[string]*models.RunResult
	loaded bool
}

// New creates a Store over dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{
		dir:  dir,
		runs: make(map[string]*models.RunResult),
	}
}

// Save writes a run to the directory. When compress is true the file is
// written gzip-compressed with a ".json.gz" suffix.
func (s *Store) Save(run *models.RunResult, compress bool) (string, error) {
	if run.RunID == "" {
		return "", fmt.Errorf("run has no id")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir: %w", err)
	}

	name := run.RunID + ".json"
	if compress {
		name += ".gz"
	}
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding run: %w", err)
	}

	if compress {
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			f.Close() //nolint:errcheck
			return "", fmt.Errorf("compressing run: %w", err)
		}
		if err := zw.Close(); err != nil {
			f.Close() //nolint:errcheck
			return "", fmt.Errorf("compressing run: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", err
		}
	} else {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
	}

	s.mu.Lock()
	if s.loaded {
		s.runs[run.RunID] = run
	}
	s.mu.Unlock()

	return path, nil
}

// load reads all run files from the configured directory.
func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]*models.RunResult)

	if s.dir == "" {
		s.loaded = true
		return nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".json.gz") {
			continue
		}
		run, err := readRunFile(filepath.Join(s.dir, name))
		if err != nil {
			// Skip unreadable files rather than failing the whole listing.
			continue
		}
		if run.RunID == "" {
			run.RunID = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".json")
		}
		s.runs[run.RunID] = run
	}

	s.loaded = true
	return nil
}

func readRunFile(path string) (*models.RunResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close() //nolint:errcheck
		r = zr
	}

	var run models.RunResult
	if err := json.NewDecoder(r).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) ensureLoaded() error {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()
	return s.load()
}

// Reload forces a fresh reload of all run files from disk.
func (s *Store) Reload() error {
	return s.load()
}

// List returns all runs sorted newest first.
func (s *Store) List() ([]*models.RunResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*models.RunResult, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Get returns the run with the given id.
func (s *Store) Get(id string) (*models.RunResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}
