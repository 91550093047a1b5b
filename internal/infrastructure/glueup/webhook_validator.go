// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package glueup

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// WebhookValidator handles validation of GlueUp webhook signatures
type WebhookValidator struct {
	secret string
}

// NewWebhookValidator creates a new GlueUp webhook validator.
// An empty secret disables validation for unsigned deployments.
func NewWebhookValidator(secret string) port.WebhookValidator {
	return &WebhookValidator{secret: secret}
}

// ValidateSignature validates the HMAC-SHA256 hex signature against the raw body
func (v *WebhookValidator) ValidateSignature(body []byte, signature string) error {
	if v.secret == "" {
		slog.Debug("webhook secret not configured, skipping signature validation")
		return nil
	}

	if signature == "" {
		return fmt.Errorf("missing webhook signature")
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(body)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		slog.Error("invalid webhook signature")
		return fmt.Errorf("invalid webhook signature")
	}

	return nil
}
