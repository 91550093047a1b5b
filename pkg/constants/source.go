// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Source constants identify what triggered a sync run
const (
	// SourceAPI indicates the run was triggered from our REST API
	SourceAPI = "api"

	// SourceWebhook indicates the run was triggered by a GlueUp webhook
	SourceWebhook = "webhook"
)
