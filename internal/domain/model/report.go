// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// Sync detail actions.
const (
	ActionInviteMember    = "invite_member"
	ActionAddToSpace      = "add_to_space"
	ActionRemoveFromSpace = "remove_from_space"
	ActionCreateEvent     = "create_event"
	ActionUpdateEvent     = "update_event"
	ActionDeleteEvent     = "delete_event"
)

// Sync detail results.
const (
	ResultSuccess = "success"
	ResultSent    = "sent"
	ResultError   = "error"
)

// SyncDetail is one per-operation record in a sync or validation report.
// It is the exhaustive union of the fields every detail kind uses; unused
// fields are omitted from the serialized form.
type SyncDetail struct {
	Action         string   `json:"action,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Email          string   `json:"email,omitempty"`
	Name           string   `json:"name,omitempty"`
	MembershipType string   `json:"membership_type,omitempty"`
	MemberType     string   `json:"member_type,omitempty"`
	CorporateName  string   `json:"corporate_name,omitempty"`
	Spaces         []string `json:"spaces,omitempty"`
	SpaceID        string   `json:"space_id,omitempty"`
	GlueUpID       string   `json:"glueup_id,omitempty"`
	CircleEventID  string   `json:"circle_event_id,omitempty"`
	CachedID       string   `json:"cached_id,omitempty"`
	CircleID       string   `json:"circle_id,omitempty"`
	Title          string   `json:"title,omitempty"`
	Slug           string   `json:"slug,omitempty"`
	StartsAt       string   `json:"starts_at,omitempty"`
	EndsAt         string   `json:"ends_at,omitempty"`
	Location       string   `json:"location,omitempty"`
	LocationType   string   `json:"location_type,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
	HasCoverImage  bool     `json:"has_cover_image,omitempty"`
	Result         string   `json:"result,omitempty"`
	DryRun         bool     `json:"dry_run,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// ReconcileResult is the outcome of reconciling one member's space
// memberships.
type ReconcileResult struct {
	Adds    int          `json:"adds"`
	Removes int          `json:"removes"`
	Errors  int          `json:"errors"`
	Details []SyncDetail `json:"details"`
}

// MemberSyncReport accumulates the outcome of one member sync run. Built
// fresh per run and returned to the caller; never persisted.
type MemberSyncReport struct {
	SyncType          string         `json:"sync_type"`
	Source            string         `json:"source,omitempty"`
	RunID             string         `json:"run_id,omitempty"`
	StartedAt         *string        `json:"started_at,omitempty"`
	CompletedAt       *string        `json:"completed_at,omitempty"`
	Created           int            `json:"created"`
	Invited           int            `json:"invited"`
	Updated           int            `json:"updated"`
	SpaceAdds         int            `json:"space_adds"`
	SpaceRemoves      int            `json:"space_removes"`
	Skipped           int            `json:"skipped"`
	Errors            int            `json:"errors"`
	DuplicatesSkipped int            `json:"duplicates_skipped"`
	CacheHits         int            `json:"cache_hits"`
	CacheMisses       int            `json:"cache_misses"`
	MemberTypes       map[string]int `json:"member_types"`
	Details           []SyncDetail   `json:"details"`
}

// NewMemberSyncReport returns a report with every member kind pre-seeded
// at zero so the tallies always serialize with all three kinds present.
func NewMemberSyncReport() *MemberSyncReport {
	return &MemberSyncReport{
		SyncType: constants.SyncTypeMembers,
		MemberTypes: map[string]int{
			string(MemberKindIndividual):       0,
			string(MemberKindCorporateAdmin):   0,
			string(MemberKindCorporateContact): 0,
		},
		Details: []SyncDetail{},
	}
}

// Merge folds a reconcile result into the run report.
func (r *MemberSyncReport) Merge(result ReconcileResult) {
	r.SpaceAdds += result.Adds
	r.SpaceRemoves += result.Removes
	r.Errors += result.Errors
	r.Details = append(r.Details, result.Details...)
}

// EventSyncReport accumulates the outcome of one event sync run.
type EventSyncReport struct {
	SyncType    string       `json:"sync_type"`
	Source      string       `json:"source,omitempty"`
	RunID       string       `json:"run_id,omitempty"`
	StartedAt   *string      `json:"started_at,omitempty"`
	CompletedAt *string      `json:"completed_at,omitempty"`
	Created     int          `json:"created"`
	Updated     int          `json:"updated"`
	Deleted     int          `json:"deleted"`
	Skipped     int          `json:"skipped"`
	Errors      int          `json:"errors"`
	Details     []SyncDetail `json:"details"`
}

// NewEventSyncReport returns an empty event sync report.
func NewEventSyncReport() *EventSyncReport {
	return &EventSyncReport{
		SyncType: constants.SyncTypeEvents,
		Details:  []SyncDetail{},
	}
}

// CacheValidationReport is the outcome of validating the identity cache
// against the live platform member list.
type CacheValidationReport struct {
	SyncType        string       `json:"sync_type"`
	Source          string       `json:"source,omitempty"`
	StartedAt       *string      `json:"started_at,omitempty"`
	CompletedAt     *string      `json:"completed_at,omitempty"`
	Valid           int          `json:"valid"`
	Invalid         int          `json:"invalid"`
	MissingInCircle int          `json:"missing_in_circle"`
	MissingInCache  int          `json:"missing_in_cache"`
	Repaired        int          `json:"repaired"`
	Details         []SyncDetail `json:"details"`
}

// NewCacheValidationReport returns an empty validation report.
func NewCacheValidationReport() *CacheValidationReport {
	return &CacheValidationReport{
		SyncType: constants.SyncTypeCacheValidation,
		Details:  []SyncDetail{},
	}
}
