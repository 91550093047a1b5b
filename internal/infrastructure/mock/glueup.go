// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides in-memory implementations of the domain ports for
// local development and testing.
package mock

import (
	"context"
	"sync"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// MockGlueUpReader provides a mock implementation of port.GlueUpReader
type MockGlueUpReader struct {
	mu         sync.RWMutex
	individual []model.IndividualMemberRecord
	corporate  []model.CorporateMembershipRecord
	events     []model.GlueUpEvent
	opErrors   map[string]error
}

var _ port.GlueUpReader = (*MockGlueUpReader)(nil)

// NewMockGlueUpReader creates a mock reader seeded with sample membership and event data
func NewMockGlueUpReader() *MockGlueUpReader {
	return &MockGlueUpReader{
		individual: []model.IndividualMemberRecord{
			{
				Membership: model.MembershipInfo{
					Name:           "Jane Doe",
					Status:         "active",
					MembershipType: model.MembershipType{Title: "Gold"},
				},
				IndividualMember: model.ContactInfo{
					EmailAddress: "jane.doe@example.com",
					GivenName:    "Jane",
					FamilyName:   "Doe",
				},
			},
			{
				Membership: model.MembershipInfo{
					Name:           "John Roe",
					Status:         "active",
					MembershipType: model.MembershipType{InternalTitle: "silver"},
				},
				IndividualMember: model.ContactInfo{
					EmailAddress: "john.roe@example.com",
					GivenName:    "John",
					FamilyName:   "Roe",
				},
			},
		},
		corporate: []model.CorporateMembershipRecord{
			{
				Membership: model.MembershipInfo{
					Name:           "Acme Corp",
					Status:         "active",
					MembershipType: model.MembershipType{Title: "Corporate Gold"},
				},
				AdminContact: &model.ContactInfo{
					EmailAddress: "ada.admin@acme.example",
					GivenName:    "Ada",
					FamilyName:   "Admin",
				},
				MemberContacts: []model.ContactInfo{
					{
						EmailAddress: "dev.one@acme.example",
						GivenName:    "Dev",
						FamilyName:   "One",
					},
				},
			},
		},
		events: []model.GlueUpEvent{
			{
				ID:            "42",
				Title:         "Launch",
				SubTitle:      "Product launch",
				About:         "<p>Join us for the launch.</p>",
				StartDateTime: 1700000000000,
				EndDateTime:   1700003600000,
				Published:     true,
				VenueInfo: &model.VenueInfo{
					Name:     "Online",
					Timezone: "Europe/Berlin",
				},
			},
		},
		opErrors: make(map[string]error),
	}
}

// SetIndividualMembers replaces the seeded individual membership records
func (m *MockGlueUpReader) SetIndividualMembers(records []model.IndividualMemberRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.individual = records
}

// SetCorporateMemberships replaces the seeded corporate membership records
func (m *MockGlueUpReader) SetCorporateMemberships(records []model.CorporateMembershipRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.corporate = records
}

// SetEvents replaces the seeded events
func (m *MockGlueUpReader) SetEvents(events []model.GlueUpEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = events
}

// SetErrorForOperation configures an error returned by the named operation
func (m *MockGlueUpReader) SetErrorForOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opErrors[operation] = err
}

// ListIndividualMembers returns the seeded individual membership records
func (m *MockGlueUpReader) ListIndividualMembers(_ context.Context) ([]model.IndividualMemberRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListIndividualMembers"]; err != nil {
		return nil, err
	}

	records := make([]model.IndividualMemberRecord, len(m.individual))
	copy(records, m.individual)
	return records, nil
}

// ListCorporateMemberships returns the seeded corporate membership records
func (m *MockGlueUpReader) ListCorporateMemberships(_ context.Context) ([]model.CorporateMembershipRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListCorporateMemberships"]; err != nil {
		return nil, err
	}

	records := make([]model.CorporateMembershipRecord, len(m.corporate))
	copy(records, m.corporate)
	return records, nil
}

// ListEvents returns the seeded events, honoring the published filter
func (m *MockGlueUpReader) ListEvents(_ context.Context, publishedOnly, _ bool) ([]model.GlueUpEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListEvents"]; err != nil {
		return nil, err
	}

	events := make([]model.GlueUpEvent, 0, len(m.events))
	for _, event := range m.events {
		if publishedOnly && !event.Published {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
