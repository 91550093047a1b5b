// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Webhook header
const (
	WebhookSignatureHeader = "x-glueup-signature"
)

// Webhook ledger limits
const (
	// WebhookLedgerMaxRecords caps the number of processed-webhook entries
	// retained in the state store; the oldest entries are evicted past this.
	WebhookLedgerMaxRecords = 1000

	// WebhookFallbackIDPrefix marks ledger entries keyed by a payload content
	// hash because the notification carried no usable identifier.
	WebhookFallbackIDPrefix = "unknown_"
)
