// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package glueup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context logging
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// Check if it's a retryable error from httpclient
	if retryableErr, ok := err.(*httpclient.RetryableError); ok {
		slog.WarnContext(ctx, "GlueUp HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("resource not found in GlueUp", err)
		case http.StatusConflict:
			return errors.NewConflict("resource already exists in GlueUp", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewUnauthorized("GlueUp authentication failed", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("GlueUp rate limited", err)
		case http.StatusBadRequest:
			return errors.NewValidation(fmt.Sprintf("GlueUp validation error: %s", retryableErr.Message), err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("GlueUp service unavailable", err)
		default:
			slog.ErrorContext(ctx, "unexpected GlueUp HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errors.NewUnexpected("GlueUp API error", err)
		}
	}

	// Handle other error types (network, timeout, etc.)
	slog.ErrorContext(ctx, "GlueUp request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewUnexpected("GlueUp request failed", err)
}
