// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package glueup

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the GlueUp client
type Config struct {
	// BaseURL is the GlueUp API base URL
	BaseURL string

	// PublicKey is the GlueUp API public key used in the signature header
	PublicKey string

	// PrivateKey is the GlueUp API private key used as the HMAC secret
	PrivateKey string

	// Email is the GlueUp account email for session authentication
	Email string

	// Passphrase is the GlueUp account passphrase for session authentication
	Passphrase string

	// Version is the GlueUp API version string used in the signature header
	Version string

	// OrganizationID is sent as requestOrganizationId on directory requests
	OrganizationID string

	// MembersEndpoint is the path for the individual membership directory
	MembersEndpoint string

	// CorporateEndpoint is the path for the corporate membership directory
	CorporateEndpoint string

	// EventsEndpoint is the path for the event list
	EventsEndpoint string

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration

	// MockMode disables real GlueUp API calls (for testing)
	MockMode bool
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.glueup.com",
		Version:           "1.0",
		MembersEndpoint:   "/membershipDirectory/members",
		CorporateEndpoint: "/membershipDirectory/corporateMemberships",
		EventsEndpoint:    "/event/list",
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryDelay:        1 * time.Second,
		MockMode:          false,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("GLUEUP_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if publicKey := os.Getenv("GLUEUP_PUBLIC_KEY"); publicKey != "" {
		config.PublicKey = publicKey
	}

	if privateKey := os.Getenv("GLUEUP_PRIVATE_KEY"); privateKey != "" {
		config.PrivateKey = privateKey
	}

	if email := os.Getenv("GLUEUP_EMAIL"); email != "" {
		config.Email = email
	}

	if passphrase := os.Getenv("GLUEUP_PASSPHRASE"); passphrase != "" {
		config.Passphrase = passphrase
	}

	if version := os.Getenv("GLUEUP_API_VERSION"); version != "" {
		config.Version = version
	}

	if orgID := os.Getenv("GLUEUP_ORGANIZATION_ID"); orgID != "" {
		config.OrganizationID = orgID
	}

	if endpoint := os.Getenv("GLUEUP_MEMBERS_ENDPOINT"); endpoint != "" {
		config.MembersEndpoint = endpoint
	}

	if endpoint := os.Getenv("GLUEUP_CORPORATE_ENDPOINT"); endpoint != "" {
		config.CorporateEndpoint = endpoint
	}

	if endpoint := os.Getenv("GLUEUP_EVENTS_ENDPOINT"); endpoint != "" {
		config.EventsEndpoint = endpoint
	}

	if timeoutStr := os.Getenv("GLUEUP_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv("GLUEUP_MAX_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil {
			config.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv("GLUEUP_RETRY_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			config.RetryDelay = delay
		}
	}

	// Check for mock mode
	if mockMode := os.Getenv("GLUEUP_SOURCE"); mockMode == "mock" {
		config.MockMode = true
	}

	return config
}
