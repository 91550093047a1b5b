// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package httpclient provides a generic HTTP client with retry logic and
// middleware support for upstream API integrations.
package httpclient

import "time"

// Config holds the HTTP client configuration
type Config struct {
	// Timeout is the overall request timeout
	Timeout time.Duration
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int
	// RetryDelay is the base delay between retries
	RetryDelay time.Duration
	// RetryBackoff enables exponential backoff between retries
	RetryBackoff bool
	// MaxDelay caps the backoff delay between retries
	MaxDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults for upstream API calls
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   2,
		RetryDelay:   1 * time.Second,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}
}
