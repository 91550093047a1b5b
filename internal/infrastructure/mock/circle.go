// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// SpaceMembershipChange records one membership mutation for assertions
type SpaceMembershipChange struct {
	Email   string
	SpaceID string
}

// InvitedMember records one invite call for assertions
type InvitedMember struct {
	Email    string
	Name     string
	SpaceIDs []string
}

// MockCircleRegistry provides a mock implementation of port.CircleRegistry
type MockCircleRegistry struct {
	mu               sync.RWMutex
	spaces           []model.CircleSpace
	spaceMembers     map[string][]model.CircleMember
	communityMembers []model.CircleMember
	events           map[string]model.CircleEventInput
	nextEventID      int64
	nextMemberID     int64
	opErrors         map[string]error

	// Call records for test assertions
	Invites      []InvitedMember
	SpaceAdds    []SpaceMembershipChange
	SpaceRemoves []SpaceMembershipChange
}

var _ port.CircleRegistry = (*MockCircleRegistry)(nil)

// NewMockCircleRegistry creates a mock registry seeded with sample spaces and members
func NewMockCircleRegistry() *MockCircleRegistry {
	return &MockCircleRegistry{
		spaces: []model.CircleSpace{
			{ID: "g1", Name: "general"},
			{ID: "g2", Name: "gold-members"},
			{ID: "g9", Name: "events"},
		},
		spaceMembers: map[string][]model.CircleMember{
			"g1": {
				{ID: "7001", Email: "admin@example.com", Name: "Admin User"},
			},
		},
		communityMembers: []model.CircleMember{
			{ID: "7001", Email: "admin@example.com", Name: "Admin User"},
		},
		events:       make(map[string]model.CircleEventInput),
		nextEventID:  9000,
		nextMemberID: 7001,
		opErrors:     make(map[string]error),
	}
}

// SetErrorForOperation configures an error returned by the named operation
func (m *MockCircleRegistry) SetErrorForOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opErrors[operation] = err
}

// SetSpaceMembers replaces the member list of a space
func (m *MockCircleRegistry) SetSpaceMembers(spaceID string, members []model.CircleMember) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaceMembers[spaceID] = members
}

// SetCommunityMembers replaces the community member list
func (m *MockCircleRegistry) SetCommunityMembers(members []model.CircleMember) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.communityMembers = members
}

// Events returns a copy of the stored events keyed by event ID
func (m *MockCircleRegistry) Events() map[string]model.CircleEventInput {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make(map[string]model.CircleEventInput, len(m.events))
	for id, event := range m.events {
		events[id] = event
	}
	return events
}

// ListSpaces retrieves all spaces in the community
func (m *MockCircleRegistry) ListSpaces(_ context.Context) ([]model.CircleSpace, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListSpaces"]; err != nil {
		return nil, err
	}

	spaces := make([]model.CircleSpace, len(m.spaces))
	copy(spaces, m.spaces)
	return spaces, nil
}

// ListSpaceMembers retrieves one page of members for a space
func (m *MockCircleRegistry) ListSpaceMembers(_ context.Context, spaceID string, page int) ([]model.CircleMember, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListSpaceMembers"]; err != nil {
		return nil, false, err
	}
	if err := m.opErrors["ListSpaceMembers:"+spaceID]; err != nil {
		return nil, false, err
	}

	// All members fit on the first page
	if page > 1 {
		return []model.CircleMember{}, false, nil
	}

	members := make([]model.CircleMember, len(m.spaceMembers[spaceID]))
	copy(members, m.spaceMembers[spaceID])
	return members, false, nil
}

// ListAllMembers retrieves all community members
func (m *MockCircleRegistry) ListAllMembers(_ context.Context) ([]model.CircleMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ListAllMembers"]; err != nil {
		return nil, err
	}

	members := make([]model.CircleMember, len(m.communityMembers))
	copy(members, m.communityMembers)
	return members, nil
}

// ResolveOwnerIdentity looks up the community member ID for the given email
func (m *MockCircleRegistry) ResolveOwnerIdentity(_ context.Context, email string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.opErrors["ResolveOwnerIdentity"]; err != nil {
		return 0, err
	}

	normalized := model.NormalizeEmail(email)
	for _, member := range m.communityMembers {
		if model.NormalizeEmail(member.Email) != normalized {
			continue
		}
		id, err := strconv.ParseInt(member.ID, 10, 64)
		if err != nil {
			return 0, errors.NewValidation(fmt.Sprintf("member %s has non-numeric ID", member.ID))
		}
		return id, nil
	}

	return 0, errors.NewNotFound("community member not found")
}

// InviteMember invites a new community member and grants the given spaces
func (m *MockCircleRegistry) InviteMember(_ context.Context, email, name string, spaceIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["InviteMember"]; err != nil {
		return err
	}

	m.Invites = append(m.Invites, InvitedMember{Email: email, Name: name, SpaceIDs: spaceIDs})

	m.nextMemberID++
	member := model.CircleMember{
		ID:    strconv.FormatInt(m.nextMemberID, 10),
		Email: email,
		Name:  name,
	}
	m.communityMembers = append(m.communityMembers, member)
	for _, spaceID := range spaceIDs {
		m.spaceMembers[spaceID] = append(m.spaceMembers[spaceID], member)
	}

	return nil
}

// AddMemberToSpace adds an existing community member to a space
func (m *MockCircleRegistry) AddMemberToSpace(_ context.Context, email, spaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["AddMemberToSpace"]; err != nil {
		return err
	}

	m.SpaceAdds = append(m.SpaceAdds, SpaceMembershipChange{Email: email, SpaceID: spaceID})

	for _, existing := range m.spaceMembers[spaceID] {
		if model.NormalizeEmail(existing.Email) == model.NormalizeEmail(email) {
			return nil
		}
	}
	m.spaceMembers[spaceID] = append(m.spaceMembers[spaceID], model.CircleMember{Email: email})
	return nil
}

// RemoveMemberFromSpace removes a community member from a space
func (m *MockCircleRegistry) RemoveMemberFromSpace(_ context.Context, email, spaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["RemoveMemberFromSpace"]; err != nil {
		return err
	}

	m.SpaceRemoves = append(m.SpaceRemoves, SpaceMembershipChange{Email: email, SpaceID: spaceID})

	members := m.spaceMembers[spaceID]
	for i, existing := range members {
		if model.NormalizeEmail(existing.Email) == model.NormalizeEmail(email) {
			m.spaceMembers[spaceID] = append(members[:i], members[i+1:]...)
			break
		}
	}
	return nil
}

// CreateEvent creates an event and returns its server-assigned identity
func (m *MockCircleRegistry) CreateEvent(_ context.Context, input model.CircleEventInput) (model.CreatedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["CreateEvent"]; err != nil {
		return model.CreatedEvent{}, err
	}

	m.nextEventID++
	id := strconv.FormatInt(m.nextEventID, 10)
	m.events[id] = input

	return model.CreatedEvent{ID: id, Slug: input.Slug}, nil
}

// UpdateEvent updates an existing event in place
func (m *MockCircleRegistry) UpdateEvent(_ context.Context, eventID string, input model.CircleEventInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["UpdateEvent"]; err != nil {
		return err
	}

	if _, exists := m.events[eventID]; !exists {
		return errors.NewNotFound("event not found")
	}
	m.events[eventID] = input
	return nil
}

// DeleteEvent deletes an event from a space
func (m *MockCircleRegistry) DeleteEvent(_ context.Context, eventID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.opErrors["DeleteEvent"]; err != nil {
		return err
	}

	if _, exists := m.events[eventID]; !exists {
		return errors.NewNotFound("event not found")
	}
	delete(m.events, eventID)
	return nil
}
