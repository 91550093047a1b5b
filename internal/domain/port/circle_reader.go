// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// CircleReader defines read operations against the Circle admin API
type CircleReader interface {
	// ListSpaces retrieves all spaces in the community
	ListSpaces(ctx context.Context) ([]model.CircleSpace, error)

	// ListSpaceMembers retrieves one page of members for a space and reports whether more pages follow
	ListSpaceMembers(ctx context.Context, spaceID string, page int) ([]model.CircleMember, bool, error)

	// ListAllMembers retrieves all community members across pages
	ListAllMembers(ctx context.Context) ([]model.CircleMember, error)

	// ResolveOwnerIdentity looks up the community member ID for the given email
	ResolveOwnerIdentity(ctx context.Context, email string) (int64, error)
}
