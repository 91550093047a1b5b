// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// CircleWriter defines write operations against the Circle admin API
type CircleWriter interface {
	// InviteMember invites a new community member and grants the given spaces
	InviteMember(ctx context.Context, email, name string, spaceIDs []string) error

	// AddMemberToSpace adds an existing community member to a space
	AddMemberToSpace(ctx context.Context, email, spaceID string) error

	// RemoveMemberFromSpace removes a community member from a space
	RemoveMemberFromSpace(ctx context.Context, email, spaceID string) error

	// CreateEvent creates an event and returns its server-assigned identity
	CreateEvent(ctx context.Context, input model.CircleEventInput) (model.CreatedEvent, error)

	// UpdateEvent updates an existing event in place
	UpdateEvent(ctx context.Context, eventID string, input model.CircleEventInput) error

	// DeleteEvent deletes an event from a space
	DeleteEvent(ctx context.Context, eventID, spaceID string) error
}
