// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"sort"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

// Identity cache sentinels. A real platform member ID is stored when known;
// these markers cover the two states where the member exists but no ID has
// been resolved yet.
const (
	// MemberIDPending marks a member that was just invited.
	MemberIDPending = "pending"
	// MemberIDKnown marks a member discovered via the membership index but
	// not yet ID-resolved.
	MemberIDKnown = "known"
)

// EventMapping links a source event to its materialized platform event.
// Existence of a mapping implies the event was previously created in the
// platform; Checksum fingerprints the last-synced content.
type EventMapping struct {
	CircleEventID FlexID  `json:"circle_event_id" msgpack:"circle_event_id"`
	Slug          string  `json:"slug"            msgpack:"slug"`
	LastSync      float64 `json:"last_sync"       msgpack:"last_sync"`
	Checksum      string  `json:"checksum"        msgpack:"checksum"`
}

// WebhookRecord is one entry in the webhook ledger. Presence of the key
// means "do not reprocess".
type WebhookRecord struct {
	ProcessedAt float64 `json:"processed_at" msgpack:"processed_at"`
	Timestamp   float64 `json:"timestamp"    msgpack:"timestamp"`
}

// StateStats summarizes the persisted state for the stats endpoint.
type StateStats struct {
	MembersCount      int `json:"members_count"`
	MemberSpacesCount int `json:"member_spaces_count"`
	EventsCount       int `json:"events_count"`
	WebhooksCount     int `json:"webhooks_count"`
}

// StateSnapshot is the single persisted state document: identity cache,
// member space assignments, event mappings, and the webhook ledger. It is
// loaded wholesale at run start, mutated in memory, and saved wholesale.
// Mutation is single-writer per run; no internal locking.
type StateSnapshot struct {
	EmailToMemberID map[string]string        `json:"email_to_member_id" msgpack:"email_to_member_id"`
	MemberSpaces    map[string][]string      `json:"member_spaces"      msgpack:"member_spaces"`
	Events          map[string]EventMapping  `json:"events"             msgpack:"events"`
	WebhookEvents   map[string]WebhookRecord `json:"webhook_events"     msgpack:"webhook_events"`
}

// NewStateSnapshot returns an empty snapshot with all sections allocated.
func NewStateSnapshot() *StateSnapshot {
	return &StateSnapshot{
		EmailToMemberID: make(map[string]string),
		MemberSpaces:    make(map[string][]string),
		Events:          make(map[string]EventMapping),
		WebhookEvents:   make(map[string]WebhookRecord),
	}
}

// EnsureDefaults allocates any section left nil by a tolerant load of an
// older or partial state document.
func (s *StateSnapshot) EnsureDefaults() {
	if s.EmailToMemberID == nil {
		s.EmailToMemberID = make(map[string]string)
	}
	if s.MemberSpaces == nil {
		s.MemberSpaces = make(map[string][]string)
	}
	if s.Events == nil {
		s.Events = make(map[string]EventMapping)
	}
	if s.WebhookEvents == nil {
		s.WebhookEvents = make(map[string]WebhookRecord)
	}
}

// LookupMemberID returns the cached platform identity marker for an email,
// empty when unknown.
func (s *StateSnapshot) LookupMemberID(email string) string {
	return s.EmailToMemberID[email]
}

// SetMemberID caches the platform identity marker for an email.
func (s *StateSnapshot) SetMemberID(email, memberID string) {
	s.EmailToMemberID[email] = memberID
}

// SpacesForMember returns the cached space assignments for a member ID.
func (s *StateSnapshot) SpacesForMember(memberID string) []string {
	return s.MemberSpaces[memberID]
}

// SetMemberSpaces records the space assignments for a member ID.
func (s *StateSnapshot) SetMemberSpaces(memberID string, spaces []string) {
	s.MemberSpaces[memberID] = spaces
}

// EventMappingFor returns the mapping for a source event ID.
func (s *StateSnapshot) EventMappingFor(sourceID string) (EventMapping, bool) {
	mapping, ok := s.Events[sourceID]
	return mapping, ok
}

// SetEventMapping stores the mapping for a source event ID.
func (s *StateSnapshot) SetEventMapping(sourceID string, mapping EventMapping) {
	s.Events[sourceID] = mapping
}

// RemoveEventMapping drops the mapping for a source event ID.
func (s *StateSnapshot) RemoveEventMapping(sourceID string) {
	delete(s.Events, sourceID)
}

// HasProcessedWebhook reports whether a webhook ID is in the ledger.
func (s *StateSnapshot) HasProcessedWebhook(webhookID string) bool {
	_, ok := s.WebhookEvents[webhookID]
	return ok
}

// MarkWebhookProcessed records a webhook ID in the ledger. The ledger is
// capped at constants.WebhookLedgerMaxRecords entries; when exceeded, the
// oldest entries by processed_at are evicted. A zero sourceTimestamp
// defaults to the processing time.
func (s *StateSnapshot) MarkWebhookProcessed(webhookID string, sourceTimestamp float64) {
	processedAt := float64(time.Now().UnixNano()) / 1e9
	if sourceTimestamp == 0 {
		sourceTimestamp = processedAt
	}

	s.WebhookEvents[webhookID] = WebhookRecord{
		ProcessedAt: processedAt,
		Timestamp:   sourceTimestamp,
	}

	if len(s.WebhookEvents) <= constants.WebhookLedgerMaxRecords {
		return
	}

	type entry struct {
		id     string
		record WebhookRecord
	}
	entries := make([]entry, 0, len(s.WebhookEvents))
	for id, record := range s.WebhookEvents {
		entries = append(entries, entry{id: id, record: record})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].record.ProcessedAt > entries[j].record.ProcessedAt
	})

	trimmed := make(map[string]WebhookRecord, constants.WebhookLedgerMaxRecords)
	for _, e := range entries[:constants.WebhookLedgerMaxRecords] {
		trimmed[e.id] = e.record
	}
	s.WebhookEvents = trimmed
}

// Stats returns section counts for the stats endpoint.
func (s *StateSnapshot) Stats() StateStats {
	return StateStats{
		MembersCount:      len(s.EmailToMemberID),
		MemberSpacesCount: len(s.MemberSpaces),
		EventsCount:       len(s.Events),
		WebhooksCount:     len(s.WebhookEvents),
	}
}
