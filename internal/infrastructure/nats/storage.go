// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	errs "github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// storage implements port.StateStore on top of a JetStream KV bucket,
// holding the full reconciliation snapshot under a single key
type storage struct {
	client *NATSClient
}

// NewStorage creates a NATS-backed state store
func NewStorage(client *NATSClient) port.StateStore {
	return &storage{client: client}
}

// Load retrieves the last persisted snapshot, returning a fresh one when none exists
func (s *storage) Load(ctx context.Context) (*model.StateSnapshot, error) {
	slog.DebugContext(ctx, "nats storage: loading state snapshot",
		"bucket", constants.KVBucketNameBridgeState)

	if s.client == nil || s.client.kvStore == nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available")
	}

	entry, err := s.client.kvStore.Get(ctx, constants.KVStateSnapshotKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.DebugContext(ctx, "no state snapshot stored yet, starting fresh")
			return model.NewStateSnapshot(), nil
		}
		slog.ErrorContext(ctx, "failed to load state snapshot", "error", err)
		return nil, errs.NewServiceUnavailable("failed to load state snapshot")
	}

	snapshot := &model.StateSnapshot{}
	if err := msgpack.Unmarshal(entry.Value(), snapshot); err != nil {
		// Older deployments stored the snapshot as JSON
		if jsonErr := json.Unmarshal(entry.Value(), snapshot); jsonErr != nil {
			slog.WarnContext(ctx, "stored state snapshot is unreadable, starting fresh",
				"msgpack_error", err, "json_error", jsonErr)
			return model.NewStateSnapshot(), nil
		}
	}

	snapshot.EnsureDefaults()

	slog.DebugContext(ctx, "nats storage: state snapshot loaded",
		"revision", entry.Revision(),
		"members_count", snapshot.Stats().MembersCount)

	return snapshot, nil
}

// Save persists the snapshot, replacing any previous one
func (s *storage) Save(ctx context.Context, snapshot *model.StateSnapshot) error {
	if s.client == nil || s.client.kvStore == nil {
		return errs.NewServiceUnavailable("KV bucket not available")
	}

	data, err := msgpack.Marshal(snapshot)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode state snapshot", "error", err)
		return errs.NewUnexpected("failed to encode state snapshot", err)
	}

	rev, err := s.client.kvStore.Put(ctx, constants.KVStateSnapshotKey, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save state snapshot", "error", err)
		return errs.NewServiceUnavailable("failed to save state snapshot")
	}

	slog.DebugContext(ctx, "nats storage: state snapshot saved",
		"revision", rev, "bytes", len(data))

	return nil
}

// IsReady checks if the store is ready by verifying the connection
func (s *storage) IsReady(ctx context.Context) error {
	if s.client == nil {
		return errs.NewServiceUnavailable("NATS client is not initialized")
	}
	return s.client.IsReady(ctx)
}
