// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// MembershipIndex maps normalized emails to the set of space IDs the member
// currently holds. It is captured once at the start of a run and treated as
// frozen for the remainder of it: adds and removes made by the run are not
// reflected back into the index.
type MembershipIndex struct {
	emailToSpaces map[string]map[string]struct{}
}

// NewMembershipIndex returns an empty index.
func NewMembershipIndex() *MembershipIndex {
	return &MembershipIndex{emailToSpaces: make(map[string]map[string]struct{})}
}

// Add records that the email holds a membership in the space.
func (x *MembershipIndex) Add(email, spaceID string) {
	normalized := model.NormalizeEmail(email)
	if normalized == "" {
		return
	}
	spaces, ok := x.emailToSpaces[normalized]
	if !ok {
		spaces = make(map[string]struct{})
		x.emailToSpaces[normalized] = spaces
	}
	spaces[spaceID] = struct{}{}
}

// Contains reports whether the email holds any space membership.
func (x *MembershipIndex) Contains(email string) bool {
	_, ok := x.emailToSpaces[model.NormalizeEmail(email)]
	return ok
}

// SpacesFor returns a copy of the space IDs the email currently holds.
func (x *MembershipIndex) SpacesFor(email string) map[string]struct{} {
	spaces := make(map[string]struct{})
	for spaceID := range x.emailToSpaces[model.NormalizeEmail(email)] {
		spaces[spaceID] = struct{}{}
	}
	return spaces
}

// Len returns the number of unique members in the index.
func (x *MembershipIndex) Len() int {
	return len(x.emailToSpaces)
}

// BuildMembershipIndex captures the current space memberships of every
// community member by paging through each space's member list once. A space
// whose enumeration fails contributes no memberships beyond the pages already
// read; the failure is logged and the remaining spaces are still indexed.
func BuildMembershipIndex(ctx context.Context, circleReader port.CircleReader) (*MembershipIndex, error) {
	spaces, err := circleReader.ListSpaces(ctx)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "building space membership index", "spaces", len(spaces))

	index := NewMembershipIndex()
	for _, space := range spaces {
		if space.ID == "" {
			continue
		}

		if err := indexSpaceMembers(ctx, circleReader, index, space.ID); err != nil {
			slog.WarnContext(ctx, "failed to list members for space",
				"error", err,
				"space_id", space.ID)
		}
	}

	slog.InfoContext(ctx, "membership index built", "unique_members", index.Len())

	return index, nil
}

func indexSpaceMembers(ctx context.Context, circleReader port.CircleReader, index *MembershipIndex, spaceID string) error {
	for page := 1; ; page++ {
		members, hasMore, err := circleReader.ListSpaceMembers(ctx, spaceID, page)
		if err != nil {
			return err
		}

		for _, member := range members {
			index.Add(member.Email, spaceID)
		}

		if !hasMore {
			return nil
		}
	}
}
