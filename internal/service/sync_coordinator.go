// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/log"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/utils"
)

// webhookSyncKey collapses concurrent webhook-triggered syncs onto one run.
const webhookSyncKey = "webhook-member-sync"

// SyncCoordinator serializes sync runs and stamps each with a run ID. Runs
// load and save the state snapshot wholesale, so two concurrent runs in the
// same process would race on last-save-wins; the coordinator's mutex closes
// that window in-process. Cross-process coordination is not provided.
type SyncCoordinator struct {
	memberSync     *MemberSyncService
	eventSync      *EventSyncService
	cacheValidator *CacheValidator

	mu           sync.Mutex
	webhookGroup singleflight.Group
}

// NewSyncCoordinator creates a new sync coordinator.
func NewSyncCoordinator(
	memberSync *MemberSyncService,
	eventSync *EventSyncService,
	cacheValidator *CacheValidator,
) *SyncCoordinator {
	return &SyncCoordinator{
		memberSync:     memberSync,
		eventSync:      eventSync,
		cacheValidator: cacheValidator,
	}
}

// RunMemberSync executes one serialized member sync run.
func (c *SyncCoordinator) RunMemberSync(ctx context.Context, dryRun bool) (*model.MemberSyncReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = withRunID(ctx)
	slog.InfoContext(ctx, "starting member sync run", "dry_run", dryRun)

	startedAt := time.Now()
	report, err := c.memberSync.SyncMembers(ctx, dryRun)
	if err != nil {
		return nil, err
	}

	report.Source = constants.SourceAPI
	report.StartedAt = utils.FormatTimePtr(&startedAt)
	report.CompletedAt = utils.NowRFC3339Ptr()
	return report, nil
}

// RunEventSync executes one serialized event sync run.
func (c *SyncCoordinator) RunEventSync(ctx context.Context, dryRun bool, ownerOverride int64) (*model.EventSyncReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = withRunID(ctx)
	slog.InfoContext(ctx, "starting event sync run",
		"dry_run", dryRun,
		"owner_override", ownerOverride)

	startedAt := time.Now()
	report, err := c.eventSync.SyncEvents(ctx, dryRun, ownerOverride)
	if err != nil {
		return nil, err
	}

	report.Source = constants.SourceAPI
	report.StartedAt = utils.FormatTimePtr(&startedAt)
	report.CompletedAt = utils.NowRFC3339Ptr()
	return report, nil
}

// RunCacheValidation executes one serialized cache validation run.
func (c *SyncCoordinator) RunCacheValidation(ctx context.Context, repair bool) (*model.CacheValidationReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx = withRunID(ctx)
	slog.InfoContext(ctx, "starting cache validation run", "repair", repair)

	startedAt := time.Now()
	report, err := c.cacheValidator.Validate(ctx, repair)
	if err != nil {
		return nil, err
	}

	report.Source = constants.SourceAPI
	report.StartedAt = utils.FormatTimePtr(&startedAt)
	report.CompletedAt = utils.NowRFC3339Ptr()
	return report, nil
}

// RunWebhookSync executes a live member sync on behalf of a webhook
// delivery. Deliveries arriving while a webhook-triggered sync is already in
// flight join it and share its report instead of queueing another full run.
func (c *SyncCoordinator) RunWebhookSync(ctx context.Context) (*model.MemberSyncReport, error) {
	report, err, shared := c.webhookGroup.Do(webhookSyncKey, func() (any, error) {
		r, runErr := c.RunMemberSync(ctx, false)
		if runErr != nil {
			return nil, runErr
		}
		r.Source = constants.SourceWebhook
		return r, nil
	})
	if shared {
		slog.DebugContext(ctx, "webhook sync joined an in-flight run")
	}
	if err != nil {
		return nil, err
	}

	return report.(*model.MemberSyncReport), nil
}

// withRunID stamps a fresh run ID into the context, both for the run's
// report and for every log line the run emits.
func withRunID(ctx context.Context) context.Context {
	runID := uuid.New().String()
	ctx = context.WithValue(ctx, constants.SyncRunIDContextKey, runID)
	return log.AppendCtx(ctx, slog.String("sync_run_id", runID))
}
