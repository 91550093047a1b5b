// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
)

// Cache validation issue kinds.
const (
	issueMissingInCircle = "missing_in_circle"
	issueMissingInCache  = "missing_in_cache"
)

// CacheValidator checks the identity cache against the live Circle member
// list. Cached identities whose email no longer appears in Circle are
// reported; live members absent from the cache are reported and, with repair
// enabled, seeded into the cache with their real member IDs.
type CacheValidator struct {
	circleReader port.CircleReader
	stateStore   port.StateStore
}

// NewCacheValidator creates a new cache validator.
func NewCacheValidator(circleReader port.CircleReader, stateStore port.StateStore) *CacheValidator {
	return &CacheValidator{
		circleReader: circleReader,
		stateStore:   stateStore,
	}
}

// Validate compares every cached identity with the live member list and
// returns the validation report. With repair enabled, discrepancies that can
// be fixed from the live list are written back to the cache and saved.
func (v *CacheValidator) Validate(ctx context.Context, repair bool) (*model.CacheValidationReport, error) {
	slog.InfoContext(ctx, "validating identity cache against circle", "repair", repair)

	liveMembers, err := v.circleReader.ListAllMembers(ctx)
	if err != nil {
		return nil, err
	}

	circleIDsByEmail := make(map[string]string, len(liveMembers))
	for _, member := range liveMembers {
		email := model.NormalizeEmail(member.Email)
		if email == "" {
			continue
		}
		circleIDsByEmail[email] = member.ID
	}

	slog.InfoContext(ctx, "fetched community members", "count", len(circleIDsByEmail))

	snapshot, err := v.stateStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	report := model.NewCacheValidationReport()

	for _, email := range sortedKeys(snapshot.EmailToMemberID) {
		if _, ok := circleIDsByEmail[model.NormalizeEmail(email)]; ok {
			report.Valid++
			continue
		}

		report.MissingInCircle++
		report.Details = append(report.Details, model.SyncDetail{
			Issue:    issueMissingInCircle,
			Email:    email,
			CachedID: snapshot.EmailToMemberID[email],
		})
	}

	for _, email := range sortedKeys(circleIDsByEmail) {
		if _, ok := snapshot.EmailToMemberID[email]; ok {
			continue
		}

		report.MissingInCache++
		report.Details = append(report.Details, model.SyncDetail{
			Issue:    issueMissingInCache,
			Email:    email,
			CircleID: circleIDsByEmail[email],
		})

		if repair {
			snapshot.SetMemberID(email, circleIDsByEmail[email])
			report.Repaired++
		}
	}

	if repair && report.Repaired > 0 {
		if err := v.stateStore.Save(ctx, snapshot); err != nil {
			slog.ErrorContext(ctx, "failed to save repaired cache", "error", err)
		} else {
			slog.InfoContext(ctx, "cache repaired", "entries_added", report.Repaired)
		}
	}

	slog.InfoContext(ctx, "cache validation complete",
		"valid", report.Valid,
		"invalid", report.Invalid,
		"missing_in_circle", report.MissingInCircle,
		"missing_in_cache", report.MissingInCache,
		"repaired", report.Repaired)

	return report, nil
}

// sortedKeys returns the map's keys in sorted order so reports list
// discrepancies deterministically.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
