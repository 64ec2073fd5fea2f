package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TempSuffix is appended to a target path while its new content is staged.
const TempSuffix = ".tmp"

// ErrIOFailure marks errors that leave the output tree in need of attention.
var ErrIOFailure = errors.New("script file i/o failed")

// FileWriter stages changed files next to their targets and moves them into
// place in one pass, so an interrupted run leaves only .tmp files behind.
type FileWriter interface {
	// WriteIfChanged stages content for path unless path already holds it.
	WriteIfChanged(path, content string) (bool, error)
	// Commit renames every staged file over its target.
	Commit() error
	// Discard removes every staged file without touching the targets.
	Discard() error
	// Pending returns the staged temp paths in staging order.
	Pending() []string
}

type fileWriter struct {
	mu      sync.Mutex
	pending []string
	staged  map[string]struct{}
	dryRun  bool
}

// NewFileWriter creates a writer that stages to disk.
func NewFileWriter() FileWriter {
	return &fileWriter{staged: map[string]struct{}{}}
}

// NewDryRunWriter creates a writer that only reports what would change.
func NewDryRunWriter() FileWriter {
	return &fileWriter{staged: map[string]struct{}{}, dryRun: true}
}

func (w *fileWriter) WriteIfChanged(path, content string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	old, err := os.ReadFile(path)
	switch {
	case err == nil:
		if string(old) == content {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("%w: read %s: %w", ErrIOFailure, path, err)
	}

	tmp := path + TempSuffix
	if !w.dryRun {
		if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: remove stale %s: %w", ErrIOFailure, tmp, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return false, fmt.Errorf("%w: create dir for %s: %w", ErrIOFailure, path, err)
		}
		if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
			return false, fmt.Errorf("%w: write %s: %w", ErrIOFailure, tmp, err)
		}
	}

	if _, ok := w.staged[tmp]; !ok {
		w.staged[tmp] = struct{}{}
		w.pending = append(w.pending, tmp)
	}
	return true, nil
}

func (w *fileWriter) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dryRun {
		w.reset()
		return nil
	}
	for i, tmp := range w.pending {
		target := strings.TrimSuffix(tmp, TempSuffix)
		if err := os.Rename(tmp, target); err != nil {
			for _, done := range w.pending[:i] {
				delete(w.staged, done)
			}
			w.pending = w.pending[i:]
			return fmt.Errorf("%w: move %s into place: %w", ErrIOFailure, target, err)
		}
	}
	w.reset()
	return nil
}

func (w *fileWriter) Discard() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	if !w.dryRun {
		for _, tmp := range w.pending {
			if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("%w: remove %s: %w", ErrIOFailure, tmp, err))
			}
		}
	}
	w.reset()
	return errors.Join(errs...)
}

func (w *fileWriter) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.pending))
	copy(out, w.pending)
	return out
}

func (w *fileWriter) reset() {
	w.pending = nil
	clear(w.staged)
}
