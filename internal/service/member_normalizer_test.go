// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/mock"
)

func TestNormalizeIndividual(t *testing.T) {
	record := model.IndividualMemberRecord{
		Membership: model.MembershipInfo{
			MembershipType: model.MembershipType{Title: "Gold"},
		},
		IndividualMember: model.ContactInfo{
			EmailAddress: "  Jane.Doe@Example.COM ",
			GivenName:    "Jane",
			FamilyName:   "Doe",
		},
	}

	member := NormalizeIndividual(record)

	assert.Equal(t, "jane.doe@example.com", member.Email)
	assert.Equal(t, "Jane Doe", member.DisplayName)
	assert.Equal(t, "gold", member.PlanSlug)
	assert.Equal(t, model.MemberKindIndividual, member.Kind)
	assert.Empty(t, member.CorporateName)
}

func TestNormalizeIndividual_PlanFallbacks(t *testing.T) {
	t.Run("internal title is used when title is empty", func(t *testing.T) {
		record := model.IndividualMemberRecord{
			Membership: model.MembershipInfo{
				MembershipType: model.MembershipType{InternalTitle: "Silver"},
			},
			IndividualMember: model.ContactInfo{EmailAddress: "a@x.com"},
		}

		assert.Equal(t, "silver", NormalizeIndividual(record).PlanSlug)
	})

	t.Run("missing titles map to unmapped", func(t *testing.T) {
		record := model.IndividualMemberRecord{
			IndividualMember: model.ContactInfo{EmailAddress: "a@x.com"},
		}

		assert.Equal(t, model.PlanSlugUnmapped, NormalizeIndividual(record).PlanSlug)
	})
}

func TestNormalizeCorporateContacts(t *testing.T) {
	t.Run("admin contact precedes member contacts", func(t *testing.T) {
		record := model.CorporateMembershipRecord{
			Membership: model.MembershipInfo{
				Name:           "Acme Corp",
				MembershipType: model.MembershipType{Title: "Corporate Gold"},
			},
			AdminContact: &model.ContactInfo{
				EmailAddress: "ada@acme.example",
				GivenName:    "Ada",
				FamilyName:   "Admin",
			},
			MemberContacts: []model.ContactInfo{
				{EmailAddress: "dev@acme.example", GivenName: "Dev", FamilyName: "One"},
			},
		}

		members := NormalizeCorporateContacts(record)
		require.Len(t, members, 2)

		assert.Equal(t, model.MemberKindCorporateAdmin, members[0].Kind)
		assert.Equal(t, "ada@acme.example", members[0].Email)
		assert.Equal(t, "Ada Admin", members[0].DisplayName)
		assert.Equal(t, "corporate gold", members[0].PlanSlug)
		assert.Equal(t, "Acme Corp", members[0].CorporateName)

		assert.Equal(t, model.MemberKindCorporateContact, members[1].Kind)
		assert.Equal(t, "dev@acme.example", members[1].Email)
		assert.Equal(t, "Acme Corp", members[1].CorporateName)
	})

	t.Run("missing admin contact is tolerated", func(t *testing.T) {
		record := model.CorporateMembershipRecord{
			Membership: model.MembershipInfo{Name: "Acme Corp"},
			MemberContacts: []model.ContactInfo{
				{EmailAddress: "dev@acme.example"},
			},
		}

		members := NormalizeCorporateContacts(record)
		require.Len(t, members, 1)
		assert.Equal(t, model.MemberKindCorporateContact, members[0].Kind)
	})

	t.Run("contacts without email are dropped", func(t *testing.T) {
		record := model.CorporateMembershipRecord{
			Membership:   model.MembershipInfo{Name: "Acme Corp"},
			AdminContact: &model.ContactInfo{GivenName: "No", FamilyName: "Email"},
			MemberContacts: []model.ContactInfo{
				{GivenName: "Also", FamilyName: "Missing"},
				{EmailAddress: "dev@acme.example"},
			},
		}

		members := NormalizeCorporateContacts(record)
		require.Len(t, members, 1)
		assert.Equal(t, "dev@acme.example", members[0].Email)
	})

	t.Run("empty corporate name falls back", func(t *testing.T) {
		record := model.CorporateMembershipRecord{
			AdminContact: &model.ContactInfo{EmailAddress: "ada@acme.example"},
		}

		members := NormalizeCorporateContacts(record)
		require.Len(t, members, 1)
		assert.Equal(t, unknownCorporateName, members[0].CorporateName)
	})
}

func TestCollectMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens individuals before corporate contacts", func(t *testing.T) {
		glueup := mock.NewMockGlueUpReader()

		members, err := CollectMembers(ctx, glueup)
		require.NoError(t, err)
		require.Len(t, members, 4)

		assert.Equal(t, "jane.doe@example.com", members[0].Email)
		assert.Equal(t, "john.roe@example.com", members[1].Email)
		assert.Equal(t, "ada.admin@acme.example", members[2].Email)
		assert.Equal(t, "dev.one@acme.example", members[3].Email)

		assert.Equal(t, model.MemberKindIndividual, members[0].Kind)
		assert.Equal(t, model.MemberKindCorporateAdmin, members[2].Kind)
		assert.Equal(t, model.MemberKindCorporateContact, members[3].Kind)
	})

	t.Run("individuals without email pass through for skip accounting", func(t *testing.T) {
		glueup := mock.NewMockGlueUpReader()
		glueup.SetIndividualMembers([]model.IndividualMemberRecord{
			{IndividualMember: model.ContactInfo{GivenName: "No", FamilyName: "Email"}},
		})
		glueup.SetCorporateMemberships(nil)

		members, err := CollectMembers(ctx, glueup)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Empty(t, members[0].Email)
	})

	t.Run("individual listing error propagates", func(t *testing.T) {
		glueup := mock.NewMockGlueUpReader()
		glueup.SetErrorForOperation("ListIndividualMembers", errors.New("glueup down"))

		_, err := CollectMembers(ctx, glueup)
		assert.Error(t, err)
	})

	t.Run("corporate listing error propagates", func(t *testing.T) {
		glueup := mock.NewMockGlueUpReader()
		glueup.SetErrorForOperation("ListCorporateMemberships", errors.New("glueup down"))

		_, err := CollectMembers(ctx, glueup)
		assert.Error(t, err)
	})
}
