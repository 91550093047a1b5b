// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// StateStore defines persistence for the reconciliation state snapshot
type StateStore interface {
	// Load retrieves the last persisted snapshot, returning a fresh one when none exists
	Load(ctx context.Context) (*model.StateSnapshot, error)

	// Save persists the snapshot, replacing any previous one
	Save(ctx context.Context, snapshot *model.StateSnapshot) error

	// IsReady checks if the store is ready by verifying the connection
	IsReady(ctx context.Context) error
}
