// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

// GlueUpReader defines read operations against the GlueUp directory and events APIs
type GlueUpReader interface {
	// ListIndividualMembers retrieves all individual membership records, paging through the directory
	ListIndividualMembers(ctx context.Context) ([]model.IndividualMemberRecord, error)

	// ListCorporateMemberships retrieves all corporate membership records with their contacts
	ListCorporateMemberships(ctx context.Context) ([]model.CorporateMembershipRecord, error)

	// ListEvents retrieves events, optionally restricted to published and future ones
	ListEvents(ctx context.Context, publishedOnly, futureOnly bool) ([]model.GlueUpEvent, error)
}
