// Package storage persists the session snapshot to the local filesystem so a
// restart restores authentication without re-login.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"beacon/internal/domain/entity"
	"beacon/internal/errors"
)

// SnapshotVersion is bumped when the persisted blob layout changes. The
// format must remain stable across restarts of the same deployed version.
const SnapshotVersion = 1

// Snapshot is the durable blob: the session slice plus a format version.
type Snapshot struct {
	State   entity.Session `json:"state"`
	Version int            `json:"version"`
}

// FileStore reads and writes the snapshot at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at path. The parent directory is
// created on the first save, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted snapshot. A missing file is not an error: it
// yields an empty session, the same as a never-logged-in client.
func (s *FileStore) Load() (entity.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.Session{}, nil
		}

		return entity.Session{}, errors.Wrap(err, "read session snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return entity.Session{}, errors.Wrap(err, "decode session snapshot")
	}
	if snap.Version != SnapshotVersion {
		// Older or newer layout: treat as logged out rather than guessing.
		return entity.Session{}, nil
	}

	return snap.State, nil
}

// Save writes the snapshot atomically (temp file + rename) so a crash
// mid-write never leaves a truncated blob behind.
func (s *FileStore) Save(state entity.Session) error {
	raw, err := json.Marshal(Snapshot{State: state, Version: SnapshotVersion})
	if err != nil {
		return errors.Wrap(err, "encode session snapshot")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create session directory")
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp snapshot")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrap(err, "write temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "close temp snapshot")
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)

		return errors.Wrap(err, "replace session snapshot")
	}

	return nil
}

// Clear removes the persisted snapshot. Clearing a snapshot that does not
// exist is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session snapshot")
	}

	return nil
}
