// Package snapshot persists the signature set of the previous run as a JSON
// array of strings at a fixed path. Exactly one prior generation is kept:
// Save replaces the file wholesale.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// FileStore reads and writes the snapshot file.
// It implements pipeline.SnapshotStore.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load returns the prior run's signature set. An absent or unreadable file,
// or one that fails to parse as a JSON string array, yields an empty set
// rather than an error, so every current record simply counts as new.
func (s *FileStore) Load() (map[string]struct{}, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]struct{}{}, nil
	}
	if err != nil {
		s.logger.Warn("snapshot file unreadable, treating as empty",
			"path", s.path, "error", err)
		return map[string]struct{}{}, nil
	}

	var signatures []string
	if err := json.Unmarshal(data, &signatures); err != nil {
		s.logger.Warn("snapshot file corrupt, treating as empty",
			"path", s.path, "error", err)
		return map[string]struct{}{}, nil
	}

	set := make(map[string]struct{}, len(signatures))
	for _, sig := range signatures {
		set[sig] = struct{}{}
	}
	return set, nil
}

// Save overwrites the snapshot with the full current-run signature list,
// pretty-printed.
func (s *FileStore) Save(signatures []string) error {
	data, err := json.MarshalIndent(signatures, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
