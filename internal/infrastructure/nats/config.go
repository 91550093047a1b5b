// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"os"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// Config holds the configuration for the NATS client
type Config struct {
	// URL is the NATS server URL
	URL string

	// Credentials is an optional path to a NATS credentials file
	Credentials string

	// Timeout is the connection timeout
	Timeout time.Duration

	// MaxReconnect is the maximum number of reconnect attempts
	MaxReconnect int

	// ReconnectWait is the wait time between reconnect attempts
	ReconnectWait time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:           "nats://localhost:4222",
		Timeout:       10 * time.Second,
		MaxReconnect:  -1,
		ReconnectWait: 2 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if url := os.Getenv(constants.EnvNATSURL); url != "" {
		config.URL = url
	}

	if credentials := os.Getenv(constants.EnvNATSCredentials); credentials != "" {
		config.Credentials = credentials
	}

	if timeoutStr := os.Getenv("NATS_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	return config
}
