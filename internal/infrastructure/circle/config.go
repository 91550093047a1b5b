// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package circle

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the Circle client
type Config struct {
	// BaseURL is the Circle admin API base URL
	BaseURL string

	// APIToken is the Circle admin API token
	APIToken string

	// AdminEmail identifies the community member used as event host
	AdminEmail string

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// MockMode disables real Circle API calls (for testing)
	MockMode bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://app.circle.so/api/admin/v2",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
		MockMode:   false,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("CIRCLE_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if token := os.Getenv("CIRCLE_API_TOKEN"); token != "" {
		config.APIToken = token
	}

	if email := os.Getenv("CIRCLE_ADMIN_EMAIL"); email != "" {
		config.AdminEmail = email
	}

	if timeoutStr := os.Getenv("CIRCLE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv("CIRCLE_MAX_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil {
			config.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv("CIRCLE_RETRY_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			config.RetryDelay = delay
		}
	}

	// Check for mock mode
	if mockMode := os.Getenv("CIRCLE_SOURCE"); mockMode == "mock" {
		config.MockMode = true
	}

	return config
}
