// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// unknownCorporateName is used when a corporate membership carries no name.
const unknownCorporateName = "Unknown Corporation"

// NormalizeIndividual flattens an individual membership record into the
// normalized member shape.
func NormalizeIndividual(record model.IndividualMemberRecord) model.Member {
	return model.Member{
		Email:       model.NormalizeEmail(record.IndividualMember.EmailAddress.String()),
		DisplayName: record.IndividualMember.DisplayName(),
		PlanSlug:    record.Membership.PlanSlug(),
		Kind:        model.MemberKindIndividual,
	}
}

// NormalizeCorporateContacts flattens a corporate membership record into its
// admin contact plus member contacts. Contacts without an email address are
// dropped.
func NormalizeCorporateContacts(record model.CorporateMembershipRecord) []model.Member {
	planSlug := record.Membership.PlanSlug()
	corporateName := record.Membership.Name
	if corporateName == "" {
		corporateName = unknownCorporateName
	}

	var members []model.Member

	if admin := record.AdminContact; admin != nil {
		email := model.NormalizeEmail(admin.EmailAddress.String())
		if email != "" {
			members = append(members, model.Member{
				Email:         email,
				DisplayName:   admin.DisplayName(),
				PlanSlug:      planSlug,
				Kind:          model.MemberKindCorporateAdmin,
				CorporateName: corporateName,
			})
		}
	}

	for _, contact := range record.MemberContacts {
		email := model.NormalizeEmail(contact.EmailAddress.String())
		if email == "" {
			continue
		}
		members = append(members, model.Member{
			Email:         email,
			DisplayName:   contact.DisplayName(),
			PlanSlug:      planSlug,
			Kind:          model.MemberKindCorporateContact,
			CorporateName: corporateName,
		})
	}

	return members
}

// CollectMembers fetches every membership record from the source directory
// and flattens it into one normalized member list: individual members first,
// then corporate admin and member contacts. Individual records without an
// email address are kept; the sync loop counts them as skipped.
func CollectMembers(ctx context.Context, source port.GlueUpReader) ([]model.Member, error) {
	individuals, err := source.ListIndividualMembers(ctx)
	if err != nil {
		return nil, err
	}

	corporates, err := source.ListCorporateMemberships(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(individuals))
	for _, record := range individuals {
		members = append(members, NormalizeIndividual(record))
	}

	corporateContacts := 0
	for _, record := range corporates {
		contacts := NormalizeCorporateContacts(record)
		corporateContacts += len(contacts)
		members = append(members, contacts...)
	}

	slog.InfoContext(ctx, "normalized directory members",
		"total", len(members),
		"individual_records", len(individuals),
		"corporate_contacts", corporateContacts)

	return members, nil
}
