// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package filestore persists the reconciliation state snapshot as a JSON
// document on local disk.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// Store implements port.StateStore backed by a single JSON file
type Store struct {
	path string
	mu   sync.Mutex
}

var _ port.StateStore = (*Store)(nil)

// NewStore creates a file-backed state store at the given path.
// An empty path falls back to the default cache location.
func NewStore(path string) *Store {
	if path == "" {
		path = constants.DefaultStateFilePath
	}
	return &Store{path: path}
}

// Load retrieves the last persisted snapshot. A missing or corrupt file
// yields a fresh snapshot so a damaged cache never blocks a sync run.
func (s *Store) Load(ctx context.Context) (*model.StateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.DebugContext(ctx, "state file does not exist, starting fresh", "path", s.path)
			return model.NewStateSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snapshot model.StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.WarnContext(ctx, "state file is corrupt, starting fresh",
			"path", s.path, "error", err)
		return model.NewStateSnapshot(), nil
	}

	snapshot.EnsureDefaults()
	return &snapshot, nil
}

// Save persists the snapshot with an atomic rename so a crash mid-write
// never leaves a truncated state file behind
func (s *Store) Save(ctx context.Context, snapshot *model.StateSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set state file permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	slog.DebugContext(ctx, "state saved", "path", s.path, "bytes", len(data))
	return nil
}

// IsReady checks if the store is ready by verifying the state directory is writable
func (s *Store) IsReady(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state directory not writable: %w", err)
	}

	probe, err := os.CreateTemp(dir, ".readyz-*.tmp")
	if err != nil {
		return fmt.Errorf("state directory not writable: %w", err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}
