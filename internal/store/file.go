package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"
)

// FileStore keeps the snapshot in a single JSON document on disk. Every
// save marshals the whole snapshot to a temp file in the same directory
// and renames it over the old one, so readers never observe a partial
// write. A process-wide mutex serializes Update calls; without it two
// concurrent booking batches could both load the same snapshot, both see a
// room available, and both commit a double-booking.
type FileStore struct {
	path      string
	mu        sync.RWMutex
	corrupted atomic.Bool
	log       *logger.Logger
}

func NewFileStore(path string, log *logger.Logger) (*FileStore, error) {
	s := &FileStore{
		path: path,
		log:  log,
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.StoreUnavailable(err)
		}
		if err := s.save(model.NewSnapshot()); err != nil {
			return nil, err
		}
		log.Info("Bootstrapped empty snapshot", "path", path)
	}

	return s, nil
}

func (s *FileStore) View(ctx context.Context, fn func(*model.Snapshot) error) error {
	if s.corrupted.Load() {
		return apperrors.CorruptState(errors.New("store is poisoned"))
	}

	s.mu.RLock()
	snap, err := s.load()
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	return fn(snap)
}

func (s *FileStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	if s.corrupted.Load() {
		return apperrors.CorruptState(errors.New("store is poisoned"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}

	if err := fn(snap); err != nil {
		return err
	}

	return s.save(snap)
}

func (s *FileStore) Ping(ctx context.Context) error {
	return s.View(ctx, func(*model.Snapshot) error { return nil })
}

func (s *FileStore) load() (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	snap := model.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		// A malformed snapshot is fatal: serving writes on top of a
		// partially parsed store would corrupt the availability invariant.
		s.corrupted.Store(true)
		s.log.Error("Snapshot failed to parse, store poisoned until repaired",
			"path", s.path,
			"error", err,
		)
		return nil, apperrors.CorruptState(err)
	}

	return snap, nil
}

func (s *FileStore) save(snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return apperrors.StoreUnavailable(err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.StoreUnavailable(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.StoreUnavailable(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.StoreUnavailable(err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.StoreUnavailable(err)
	}

	return nil
}
