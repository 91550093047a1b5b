// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// MockStateStore provides an in-memory implementation of port.StateStore
type MockStateStore struct {
	mu       sync.Mutex
	snapshot *model.StateSnapshot
	opErrors map[string]error

	// SaveCount tracks how many times Save was called
	SaveCount int
}

var _ port.StateStore = (*MockStateStore)(nil)

// NewMockStateStore creates an empty in-memory state store
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		snapshot: model.NewStateSnapshot(),
		opErrors: make(map[string]error),
	}
}

// SetErrorForOperation configures an error returned by the named operation
func (m *MockStateStore) SetErrorForOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opErrors[operation] = err
}

// Load retrieves the current snapshot
func (m *MockStateStore) Load(_ context.Context) (*model.StateSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["Load"]; err != nil {
		return nil, err
	}

	m.snapshot.EnsureDefaults()
	return m.snapshot, nil
}

// Save replaces the stored snapshot
func (m *MockStateStore) Save(_ context.Context, snapshot *model.StateSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["Save"]; err != nil {
		return err
	}

	m.snapshot = snapshot
	m.SaveCount++
	return nil
}

// IsReady always reports ready unless an error is configured
func (m *MockStateStore) IsReady(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opErrors["IsReady"]
}
