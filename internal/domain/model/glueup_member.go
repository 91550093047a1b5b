// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "strings"

// IndividualMemberRecord is a raw individual membership record from the
// GlueUp membership directory.
type IndividualMemberRecord struct {
	Membership       MembershipInfo `json:"membership"`
	IndividualMember ContactInfo    `json:"individualMember"`
}

// CorporateMembershipRecord is a raw corporate membership record from the
// GlueUp membership directory. Each record carries one admin contact plus
// zero or more member contacts.
type CorporateMembershipRecord struct {
	Membership     MembershipInfo `json:"membership"`
	AdminContact   *ContactInfo   `json:"adminContact"`
	MemberContacts []ContactInfo  `json:"memberContacts"`
}

// MembershipInfo carries the membership-level fields of a directory record.
type MembershipInfo struct {
	// Name is the corporate name on corporate memberships
	Name           string         `json:"name"`
	Status         string         `json:"status"`
	MembershipType MembershipType `json:"membershipType"`
}

// MembershipType identifies the membership plan of a record.
type MembershipType struct {
	Title         string `json:"title"`
	InternalTitle string `json:"internalTitle"`
}

// ContactInfo is a person on a directory record. EmailAddress arrives either
// as a bare string or wrapped in a {"value": ...} object.
type ContactInfo struct {
	EmailAddress StringOrRef `json:"emailAddress"`
	GivenName    string      `json:"givenName"`
	FamilyName   string      `json:"familyName"`
}

// DisplayName returns "given family" trimmed.
func (c ContactInfo) DisplayName() string {
	return strings.TrimSpace(c.GivenName + " " + c.FamilyName)
}

// PlanSlug resolves the plan slug of a membership: the type title, falling
// back to the internal title, lowercased; PlanSlugUnmapped when both are
// empty.
func (m MembershipInfo) PlanSlug() string {
	title := m.MembershipType.Title
	if title == "" {
		title = m.MembershipType.InternalTitle
	}
	if title == "" {
		title = PlanSlugUnmapped
	}
	return strings.ToLower(strings.TrimSpace(title))
}
