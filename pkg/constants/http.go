// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Header names used by the external registry clients
const (
	// ContentTypeHeader is the header name for content type
	ContentTypeHeader = "Content-Type"

	// ContentTypeJSON is the JSON content type value
	ContentTypeJSON = "application/json"

	// GlueUpSignatureHeader carries the per-request HMAC signature for GlueUp calls
	GlueUpSignatureHeader = "a"

	// GlueUpTokenHeader carries the GlueUp session token
	GlueUpTokenHeader = "token"

	// GlueUpOrganizationHeader scopes membership-directory requests to an organization
	GlueUpOrganizationHeader = "requestOrganizationId"
)
