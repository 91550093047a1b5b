// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// WebhookEvent is an inbound change notification: an identifier, an
// optional source timestamp, and the verbatim payload bytes.
type WebhookEvent struct {
	ID        string  `json:"id"`
	Timestamp float64 `json:"timestamp"`
	Payload   []byte  `json:"-"`
}

// ParseWebhookEvent decodes the identifying envelope of a notification
// body. A malformed body is not an error; the event simply carries no ID
// and falls back to a content hash for deduplication.
func ParseWebhookEvent(body []byte) WebhookEvent {
	var envelope struct {
		ID        FlexID    `json:"id"`
		Timestamp FlexFloat `json:"timestamp"`
	}
	_ = json.Unmarshal(body, &envelope)

	return WebhookEvent{
		ID:        envelope.ID.String(),
		Timestamp: envelope.Timestamp.Value,
		Payload:   body,
	}
}

// DedupID returns the ledger key for this notification: its identifier
// when present, otherwise "unknown_" plus the first 16 hex characters of
// the payload's SHA-256 digest.
func (w WebhookEvent) DedupID() string {
	if w.ID != "" {
		return w.ID
	}
	sum := sha256.Sum256(w.Payload)
	return constants.WebhookFallbackIDPrefix + hex.EncodeToString(sum[:])[:16]
}
