// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines shared context key types used throughout the bridge service.
package constants

// ContextKey is the unified type for all context keys to prevent type mismatches
type ContextKey string

// Context keys for various middleware and service contexts
const (
	// SyncRunIDContextKey is the context key for the sync run ID
	SyncRunIDContextKey ContextKey = "sync-run-id"

	// WebhookBodyContextKey is the context key for the captured raw webhook body
	WebhookBodyContextKey ContextKey = "webhook-raw-body"
)
