package jsonl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorIndex = (*Store)(nil)

// Store serves cosine similarity search over the JSONL index file.
// The loaded snapshot is swapped atomically on reload, so concurrent
// searches never observe a partially loaded index.
type Store struct {
	path    string
	current atomic.Pointer[snapshot]
}

// NewStore opens the index at the given path and loads the initial
// snapshot. A missing file is not an error; the store starts empty
// and picks the file up once ingestion creates it.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	snap, err := loadSnapshot(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)

	return s, nil
}

// Search finds the k highest-scoring records for the query vector.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]domain.ScoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}

	return s.current.Load().search(query, k), nil
}

// Size returns the number of loaded records.
func (s *Store) Size() int {
	return s.current.Load().size()
}

// EnsureFresh reloads the snapshot if the file's modification time has
// changed since the last load. A file that disappeared swaps in an
// empty snapshot.
func (s *Store) EnsureFresh() error {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if s.current.Load().size() > 0 {
				s.current.Store(emptySnapshot())
			}
			return nil
		}
		return fmt.Errorf("stat index file: %w", err)
	}

	if info.ModTime().Equal(s.current.Load().modTime) {
		return nil
	}
	return s.Reload()
}

// Reload rebuilds the snapshot unconditionally.
func (s *Store) Reload() error {
	snap, err := loadSnapshot(s.path)
	if err != nil {
		return err
	}
	s.current.Store(snap)
	return nil
}

// Watch reloads the snapshot whenever the index file changes on disk.
// It blocks until the context is cancelled. Reload errors are reported
// through onError if set, and the watch continues.
func (s *Store) Watch(ctx context.Context, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the writer replaces the file by rename, and
	// a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching index directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.EnsureFresh(); err != nil && onError != nil {
				onError(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}
