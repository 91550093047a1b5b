// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the bridge service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "glueup-circle-bridge"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvNATSCredentials is the environment variable for NATS credentials
	EnvNATSCredentials = "NATS_CREDENTIALS"

	// EnvStateBackend is the environment variable selecting the state store backend (file or nats)
	EnvStateBackend = "STATE_BACKEND"
	// EnvStateFilePath is the environment variable for the file-backed state store path
	EnvStateFilePath = "STATE_FILE_PATH"
	// EnvMappingFile is the environment variable for the membership/event mapping YAML file
	EnvMappingFile = "MAPPING_FILE"
	// EnvWebhookSecret is the environment variable for the GlueUp webhook signing secret
	EnvWebhookSecret = "GLUEUP_WEBHOOK_SECRET"
)

// State backend names
const (
	// StateBackendFile selects the JSON file state store
	StateBackendFile = "file"
	// StateBackendNATS selects the NATS JetStream KV state store
	StateBackendNATS = "nats"
)
