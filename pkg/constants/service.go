// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Sync run types for report labeling and logging
const (
	SyncTypeMembers         = "members"
	SyncTypeEvents          = "events"
	SyncTypeCacheValidation = "cache_validation"
)
