package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/254carbon/graph-validator/pkg/logging"
)

// ChangeType represents which validation input changed
type ChangeType int

const (
	ChangeTypeCatalog ChangeType = iota
	ChangeTypeRules
)

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches the catalog and rules files for changes so the
// validation pipeline can be re-run. The pipeline itself stays single-shot;
// the watcher only triggers fresh invocations.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	catalogPath string
	rulesPath   string
	events      chan ChangeEvent
	done        chan struct{}
}

// NewFileWatcher creates a watcher for the given catalog and rules paths
func NewFileWatcher(catalogPath, rulesPath string) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:     w,
		catalogPath: filepath.Clean(catalogPath),
		rulesPath:   filepath.Clean(rulesPath),
		events:      make(chan ChangeEvent, 100),
		done:        make(chan struct{}),
	}, nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	// Watch the parent directories; editors often replace files rather
	// than writing them in place, which only the directory watch sees
	dirs := map[string]bool{
		filepath.Dir(fw.catalogPath): true,
		filepath.Dir(fw.rulesPath):   true,
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	logging.Info("watching validation inputs",
		"catalog", fw.catalogPath, "rules", fw.rulesPath)

	go fw.processEvents(ctx)
	return nil
}

// processEvents filters raw fsnotify events down to the two watched files
// and batches rapid successions of writes
func (fw *FileWatcher) processEvents(ctx context.Context) {
	var catalogPaths []string
	var rulesPaths []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(catalogPaths) > 0 {
			fw.events <- ChangeEvent{
				Type:      ChangeTypeCatalog,
				Paths:     catalogPaths,
				Timestamp: time.Now(),
			}
			catalogPaths = nil
		}
		if len(rulesPaths) > 0 {
			fw.events <- ChangeEvent{
				Type:      ChangeTypeRules,
				Paths:     rulesPaths,
				Timestamp: time.Now(),
			}
			rulesPaths = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			close(fw.done)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			switch filepath.Clean(event.Name) {
			case fw.catalogPath:
				catalogPaths = append(catalogPaths, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			case fw.rulesPath:
				rulesPaths = append(rulesPaths, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			}

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	close(fw.done)
	return fw.watcher.Close()
}
