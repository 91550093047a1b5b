// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/log"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/redaction"
)

// MemberSyncService reconciles the GlueUp membership roster into Circle
// spaces. Each run captures the membership index once, flattens the directory
// into normalized members, and converges every member onto the spaces its
// plan grants.
type MemberSyncService struct {
	glueupReader port.GlueUpReader
	circle       port.CircleRegistry
	stateStore   port.StateStore
	mapping      *MappingConfig
	reconciler   *MemberReconciler
}

// NewMemberSyncService creates a new member sync service.
func NewMemberSyncService(
	glueupReader port.GlueUpReader,
	circle port.CircleRegistry,
	stateStore port.StateStore,
	mapping *MappingConfig,
) *MemberSyncService {
	return &MemberSyncService{
		glueupReader: glueupReader,
		circle:       circle,
		stateStore:   stateStore,
		mapping:      mapping,
		reconciler:   NewMemberReconciler(circle),
	}
}

// SyncMembers runs one full membership reconciliation pass and returns its
// report. With dryRun set, every intended change is reported without calling
// Circle. The state snapshot is saved after each successful invite and once
// at the end of the run; save failures are logged and the run continues with
// in-memory state.
func (s *MemberSyncService) SyncMembers(ctx context.Context, dryRun bool) (*model.MemberSyncReport, error) {
	snapshot, err := s.stateStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	index, err := BuildMembershipIndex(ctx, s.circle)
	if err != nil {
		return nil, err
	}

	members, err := CollectMembers(ctx, s.glueupReader)
	if err != nil {
		return nil, err
	}

	report := model.NewMemberSyncReport()
	if runID, ok := ctx.Value(constants.SyncRunIDContextKey).(string); ok {
		report.RunID = runID
	}

	seenInBatch := make(map[string]struct{}, len(members))

	for _, member := range members {
		if _, ok := report.MemberTypes[string(member.Kind)]; ok {
			report.MemberTypes[string(member.Kind)]++
		}

		// First occurrence wins within a batch.
		if _, dup := seenInBatch[member.Email]; dup {
			slog.DebugContext(ctx, "skipping duplicate email in batch",
				"email", redaction.RedactEmail(member.Email))
			report.DuplicatesSkipped++
			continue
		}
		seenInBatch[member.Email] = struct{}{}

		if member.Email == "" {
			report.Skipped++
			continue
		}

		desiredSpaces := DecideSpaces(s.mapping, member.PlanSlug)

		memberID := snapshot.LookupMemberID(member.Email)
		if memberID != "" {
			report.CacheHits++
		} else {
			report.CacheMisses++
			// The cache may be stale; the membership index is the live view.
			if index.Contains(member.Email) {
				slog.InfoContext(ctx, "member found in circle but missing from cache, repairing",
					"email", redaction.RedactEmail(member.Email))
				snapshot.SetMemberID(member.Email, model.MemberIDKnown)
				memberID = model.MemberIDKnown
				report.CacheHits++
				report.CacheMisses--
			}
		}

		if memberID == "" {
			s.inviteMember(ctx, snapshot, report, index, member, desiredSpaces, dryRun)
			continue
		}

		result := s.reconciler.Reconcile(ctx, member.Email, desiredSpaces, index, dryRun)
		report.Merge(result)
		if result.Adds == 0 && result.Removes == 0 {
			report.Skipped++
		}
	}

	if err := s.stateStore.Save(ctx, snapshot); err != nil {
		// Invites already went out; losing the cache means the next run
		// re-invites everyone it cannot resolve.
		slog.ErrorContext(ctx, "final state save failed, some changes may not be persisted",
			"error", err,
			log.PriorityCritical())
	}

	slog.InfoContext(ctx, "member sync complete",
		"dry_run", dryRun,
		"invited", report.Invited,
		"space_adds", report.SpaceAdds,
		"space_removes", report.SpaceRemoves,
		"skipped", report.Skipped,
		"duplicates_skipped", report.DuplicatesSkipped,
		"cache_hits", report.CacheHits,
		"cache_misses", report.CacheMisses,
		"errors", report.Errors,
		"member_types", report.MemberTypes)

	return report, nil
}

// inviteMember optimistically invites a member with no resolvable identity;
// Circle deduplicates invites for addresses that already exist. On a live run
// the member is cached as pending, the cache is saved, and the member is
// immediately reconciled into its desired spaces.
func (s *MemberSyncService) inviteMember(
	ctx context.Context,
	snapshot *model.StateSnapshot,
	report *model.MemberSyncReport,
	index *MembershipIndex,
	member model.Member,
	desiredSpaces []string,
	dryRun bool,
) {
	if dryRun {
		report.Invited++
		report.Details = append(report.Details, model.SyncDetail{
			Action:         model.ActionInviteMember,
			Email:          member.Email,
			Name:           member.DisplayName,
			MembershipType: member.PlanSlug,
			MemberType:     string(member.Kind),
			CorporateName:  member.CorporateName,
			Spaces:         desiredSpaces,
			DryRun:         true,
		})

		report.Merge(s.reconciler.Reconcile(ctx, member.Email, desiredSpaces, index, true))
		return
	}

	if err := s.circle.InviteMember(ctx, member.Email, member.DisplayName, desiredSpaces); err != nil {
		slog.ErrorContext(ctx, "failed to invite member",
			"error", err,
			"email", redaction.RedactEmail(member.Email))
		report.Errors++
		return
	}

	report.Invited++
	report.Details = append(report.Details, model.SyncDetail{
		Action:        model.ActionInviteMember,
		Email:         member.Email,
		MemberType:    string(member.Kind),
		CorporateName: member.CorporateName,
		Result:        model.ResultSent,
	})

	snapshot.SetMemberID(member.Email, model.MemberIDPending)
	if err := s.stateStore.Save(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "state save failed after invite, continuing sync",
			"error", err,
			"email", redaction.RedactEmail(member.Email))
	}

	report.Merge(s.reconciler.Reconcile(ctx, member.Email, desiredSpaces, index, false))
}
