// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/redaction"
)

// DecideSpaces returns the spaces a member with the given plan should hold:
// the default spaces plus the plan's spaces, de-duplicated with first-seen
// order preserved.
func DecideSpaces(mapping *MappingConfig, planSlug string) []string {
	combined := make([]string, 0, len(mapping.DefaultSpaces))
	combined = append(combined, mapping.DefaultSpaces...)
	combined = append(combined, mapping.SpacesForPlan(planSlug)...)

	seen := make(map[string]struct{}, len(combined))
	spaces := make([]string, 0, len(combined))
	for _, spaceID := range combined {
		if _, ok := seen[spaceID]; ok {
			continue
		}
		seen[spaceID] = struct{}{}
		spaces = append(spaces, spaceID)
	}

	return spaces
}

// MemberReconciler converges one member's space memberships onto a desired
// set, reading the current state from the run's frozen membership index.
type MemberReconciler struct {
	circleWriter port.CircleWriter
}

// NewMemberReconciler creates a new member reconciler.
func NewMemberReconciler(circleWriter port.CircleWriter) *MemberReconciler {
	return &MemberReconciler{circleWriter: circleWriter}
}

// Reconcile diffs the member's current spaces against the desired set and
// applies the adds and removes in sorted order. A failure on one space is
// recorded and does not stop the remaining spaces from converging.
// Reconciliation is idempotent: re-running with an unchanged index and
// desired set yields zero adds and removes.
func (r *MemberReconciler) Reconcile(ctx context.Context, email string, desiredSpaces []string, index *MembershipIndex, dryRun bool) model.ReconcileResult {
	result := model.ReconcileResult{Details: []model.SyncDetail{}}

	current := index.SpacesFor(email)
	desired := make(map[string]struct{}, len(desiredSpaces))
	for _, spaceID := range desiredSpaces {
		desired[spaceID] = struct{}{}
	}

	var toAdd, toRemove []string
	for spaceID := range desired {
		if _, ok := current[spaceID]; !ok {
			toAdd = append(toAdd, spaceID)
		}
	}
	for spaceID := range current {
		if _, ok := desired[spaceID]; !ok {
			toRemove = append(toRemove, spaceID)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)

	for _, spaceID := range toAdd {
		if dryRun {
			result.Adds++
			result.Details = append(result.Details, model.SyncDetail{
				Action:  model.ActionAddToSpace,
				Email:   email,
				SpaceID: spaceID,
				DryRun:  true,
			})
			continue
		}

		if err := r.circleWriter.AddMemberToSpace(ctx, email, spaceID); err != nil {
			slog.ErrorContext(ctx, "failed to add member to space",
				"error", err,
				"email", redaction.RedactEmail(email),
				"space_id", spaceID)
			result.Errors++
			result.Details = append(result.Details, model.SyncDetail{
				Action:  model.ActionAddToSpace,
				Email:   email,
				SpaceID: spaceID,
				Result:  model.ResultError,
				Error:   err.Error(),
			})
			continue
		}

		result.Adds++
		result.Details = append(result.Details, model.SyncDetail{
			Action:  model.ActionAddToSpace,
			Email:   email,
			SpaceID: spaceID,
			Result:  model.ResultSuccess,
		})
	}

	for _, spaceID := range toRemove {
		if dryRun {
			result.Removes++
			result.Details = append(result.Details, model.SyncDetail{
				Action:  model.ActionRemoveFromSpace,
				Email:   email,
				SpaceID: spaceID,
				DryRun:  true,
			})
			continue
		}

		if err := r.circleWriter.RemoveMemberFromSpace(ctx, email, spaceID); err != nil {
			slog.ErrorContext(ctx, "failed to remove member from space",
				"error", err,
				"email", redaction.RedactEmail(email),
				"space_id", spaceID)
			result.Errors++
			result.Details = append(result.Details, model.SyncDetail{
				Action:  model.ActionRemoveFromSpace,
				Email:   email,
				SpaceID: spaceID,
				Result:  model.ResultError,
				Error:   err.Error(),
			})
			continue
		}

		result.Removes++
		result.Details = append(result.Details, model.SyncDetail{
			Action:  model.ActionRemoveFromSpace,
			Email:   email,
			SpaceID: spaceID,
			Result:  model.ResultSuccess,
		})
	}

	return result
}
