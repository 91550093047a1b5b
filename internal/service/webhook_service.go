// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// WebhookResult reports how one inbound notification was handled.
type WebhookResult struct {
	Received   bool                    `json:"received"`
	Duplicate  bool                    `json:"duplicate,omitempty"`
	WebhookID  string                  `json:"webhook_id"`
	SyncReport *model.MemberSyncReport `json:"sync_report,omitempty"`
}

// WebhookService processes inbound change notifications from GlueUp. Each
// notification is deduplicated through the state ledger; a fresh one
// triggers a live member sync. The notification never scopes the sync to the
// changed entity; a full reconciliation pass runs either way.
type WebhookService struct {
	coordinator *SyncCoordinator
	stateStore  port.StateStore
	validator   port.WebhookValidator
}

// NewWebhookService creates a new webhook service. The validator may be nil
// when no signing secret is configured.
func NewWebhookService(coordinator *SyncCoordinator, stateStore port.StateStore, validator port.WebhookValidator) *WebhookService {
	return &WebhookService{
		coordinator: coordinator,
		stateStore:  stateStore,
		validator:   validator,
	}
}

// ProcessWebhook handles one raw notification body. Redelivery of an
// already-processed notification is a no-op; a failed sync leaves the ledger
// unmarked so the provider's retry re-attempts it.
func (s *WebhookService) ProcessWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if s.validator != nil {
		if err := s.validator.ValidateSignature(body, signature); err != nil {
			slog.WarnContext(ctx, "webhook signature validation failed", "error", err)
			return nil, errors.NewUnauthorized("webhook signature validation failed", err)
		}
	}

	event := model.ParseWebhookEvent(body)
	webhookID := event.DedupID()

	snapshot, err := s.stateStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	if snapshot.HasProcessedWebhook(webhookID) {
		slog.InfoContext(ctx, "duplicate webhook delivery, skipping sync", "webhook_id", webhookID)
		return &WebhookResult{Received: true, Duplicate: true, WebhookID: webhookID}, nil
	}

	slog.InfoContext(ctx, "processing webhook notification",
		"webhook_id", webhookID,
		"payload_bytes", len(body))

	syncReport, err := s.coordinator.RunWebhookSync(ctx)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{Received: true, WebhookID: webhookID, SyncReport: syncReport}

	// The sync saved its own snapshot; reload before marking the ledger so
	// the mark does not clobber the sync's writes.
	snapshot, err = s.stateStore.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to reload state for webhook ledger",
			"error", err,
			"webhook_id", webhookID)
		return result, nil
	}

	snapshot.MarkWebhookProcessed(webhookID, event.Timestamp)
	if err := s.stateStore.Save(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "failed to persist webhook ledger entry",
			"error", err,
			"webhook_id", webhookID)
	}

	return result, nil
}
