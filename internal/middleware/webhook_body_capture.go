// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package middleware provides HTTP middleware for the bridge server.
package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// WebhookBodyCaptureMiddleware captures the raw request body before JSON parsing.
// Required for signature validation which needs the exact raw bytes.
func WebhookBodyCaptureMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only capture body for GlueUp webhook endpoints
			if r.URL.Path == "/webhooks/glueup" {
				// Limit body size to prevent memory exhaustion (e.g., 10MB)
				r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)

				body, err := io.ReadAll(r.Body)
				if err != nil {
					http.Error(w, "failed to read request body: max 10MB allowed", http.StatusBadRequest)
					return
				}

				// Replace body so handlers can still read it
				r.Body = io.NopCloser(bytes.NewReader(body))

				// Store raw body in context for the signature validator
				ctx := context.WithValue(r.Context(), constants.WebhookBodyContextKey, body)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}
