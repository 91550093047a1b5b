// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the bridge service.
package utils

import (
	"fmt"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// ValidateRFC3339 parses an RFC3339 timestamp string, rejecting empty input.
func ValidateRFC3339(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Time{}, fmt.Errorf(constants.ErrEmptyTimestamp)
	}

	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", constants.ErrInvalidTimestampFormat, err)
	}

	return t, nil
}

// NowRFC3339Ptr returns the current time as an RFC3339 string pointer, for
// optional report fields.
func NowRFC3339Ptr() *string {
	now := time.Now().Format(constants.TimestampFormat)
	return &now
}

// FormatTimePtr formats a time as an RFC3339 string pointer, nil in nil out.
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(constants.TimestampFormat)
	return &formatted
}
