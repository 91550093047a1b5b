// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the bridge service.
package model

import "strings"

// MemberKind identifies which kind of directory record a normalized member
// came from.
type MemberKind string

const (
	// MemberKindIndividual is a member from an individual membership record.
	MemberKindIndividual MemberKind = "individual"
	// MemberKindCorporateAdmin is the admin contact of a corporate membership.
	MemberKindCorporateAdmin MemberKind = "corporate_admin"
	// MemberKindCorporateContact is a member contact of a corporate membership.
	MemberKindCorporateContact MemberKind = "corporate_contact"
)

// PlanSlugUnmapped is the plan slug assigned when a membership record
// carries no usable membership type title.
const PlanSlugUnmapped = "unmapped"

// Member is the normalized member shape every directory record flattens
// into. It is transient: recomputed from source data every run and never
// persisted.
type Member struct {
	// Email is lowercased and trimmed; the unique key within a run
	Email string `json:"email"`
	// DisplayName is "given family" trimmed
	DisplayName string `json:"name"`
	// PlanSlug is the lowercased membership type title, "unmapped" if absent
	PlanSlug string `json:"plan_slug"`
	// Kind records which record shape produced this member
	Kind MemberKind `json:"member_type"`
	// CorporateName is set only for corporate kinds
	CorporateName string `json:"corporate_name,omitempty"`
}

// NormalizeEmail lowercases and trims an email address. All index keys,
// cache keys, and in-batch dedup checks go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
