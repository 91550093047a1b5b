// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// WebhookValidator defines the contract for webhook signature validation
type WebhookValidator interface {
	// ValidateSignature validates the webhook signature against the raw body
	ValidateSignature(body []byte, signature string) error
}
