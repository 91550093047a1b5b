// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package circle

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
		slog.WarnContext(ctx, "Circle HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("resource not found in Circle", err)
		case http.StatusConflict:
			return errors.NewConflict("resource already exists in Circle", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewUnauthorized("Circle authentication failed", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("Circle rate limited", err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.NewValidation(fmt.Sprintf("Circle validation error: %s", retryableErr.Message), err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("Circle service unavailable", err)
		default:
			slog.ErrorContext(ctx, "unexpected Circle HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errors.NewUnexpected("Circle API error", err)
		}
	}

	// Handle other error types (network, timeout, etc.)
	slog.ErrorContext(ctx, "Circle request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewUnexpected("Circle request failed", err)
}
