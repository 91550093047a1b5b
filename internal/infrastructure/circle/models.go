// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package circle

import (
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// memberRecord is a community or space member as returned by the admin API
type memberRecord struct {
	ID    model.FlexID `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
}

func (r memberRecord) toModel() model.CircleMember {
	return model.CircleMember{
		ID:    r.ID.String(),
		Email: r.Email,
		Name:  r.Name,
	}
}

// spaceRecord is a space as returned by the admin API
type spaceRecord struct {
	ID   model.FlexID `json:"id"`
	Name string       `json:"name"`
}

func (r spaceRecord) toModel() model.CircleSpace {
	return model.CircleSpace{
		ID:   r.ID.String(),
		Name: r.Name,
	}
}

// membersPage is one page of the community or space member listings
type membersPage struct {
	Records     []memberRecord `json:"records"`
	HasNextPage bool           `json:"has_next_page"`
}

// spacesPage is one page of the space listing
type spacesPage struct {
	Records     []spaceRecord `json:"records"`
	HasNextPage bool          `json:"has_next_page"`
}

// inviteRequest is the POST body for inviting a community member.
// First and last name are only sent when a display name is known; a
// single-token name still sends an empty last name.
type inviteRequest struct {
	Email     string   `json:"email"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	SpaceIDs  []string `json:"space_ids,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// spaceMemberRequest is the POST body for adding a member to a space
type spaceMemberRequest struct {
	Email   string `json:"email"`
	SpaceID string `json:"space_id"`
}

// eventRecord is the event identity returned by event create calls
type eventRecord struct {
	ID   model.FlexID `json:"id"`
	Slug string       `json:"slug"`
}
