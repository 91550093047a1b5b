// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// EventSyncService mirrors GlueUp events into a Circle space. Created events
// are tracked in the state snapshot's event mappings; content checksums skip
// unchanged events on later runs.
type EventSyncService struct {
	glueupReader port.GlueUpReader
	circle       port.CircleRegistry
	stateStore   port.StateStore
	config       EventSyncConfig
	adminEmail   string
}

// NewEventSyncService creates a new event sync service. adminEmail is the
// Circle member whose identity owns created events unless a run supplies an
// override.
func NewEventSyncService(
	glueupReader port.GlueUpReader,
	circle port.CircleRegistry,
	stateStore port.StateStore,
	config EventSyncConfig,
	adminEmail string,
) *EventSyncService {
	return &EventSyncService{
		glueupReader: glueupReader,
		circle:       circle,
		stateStore:   stateStore,
		config:       config,
		adminEmail:   adminEmail,
	}
}

// SyncEvents runs one event sync pass and returns its report. Each event is
// independently fault-isolated: one event's failure is counted and the rest
// still converge. With dryRun set, intended actions are reported without
// calling Circle.
func (s *EventSyncService) SyncEvents(ctx context.Context, dryRun bool, ownerOverride int64) (*model.EventSyncReport, error) {
	if s.config.DefaultSpaceID == "" {
		return nil, errors.NewValidation("no default space configured for event sync")
	}

	ownerID := ownerOverride
	if ownerID == 0 {
		resolved, err := s.circle.ResolveOwnerIdentity(ctx, s.adminEmail)
		if err != nil {
			return nil, err
		}
		ownerID = resolved
	}

	snapshot, err := s.stateStore.Load(ctx)
	if err != nil {
		return nil, err
	}

	settings := s.config.SyncSettings
	slog.InfoContext(ctx, "fetching events from glueup",
		"published_only", settings.PublishedOnlyEnabled(),
		"future_only", settings.FutureOnlyEnabled())

	events, err := s.glueupReader.ListEvents(ctx, settings.PublishedOnlyEnabled(), settings.FutureOnlyEnabled())
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "fetched events from glueup", "count", len(events))

	report := model.NewEventSyncReport()
	if runID, ok := ctx.Value(constants.SyncRunIDContextKey).(string); ok {
		report.RunID = runID
	}

	seen := make(map[string]struct{}, len(events))

	for i := range events {
		event := &events[i]

		sourceID := event.SourceID()
		if sourceID == "" {
			slog.WarnContext(ctx, "event missing source id, skipping", "title", event.Title)
			report.Skipped++
			continue
		}
		seen[sourceID] = struct{}{}

		mapping, hasMapping := snapshot.EventMappingFor(sourceID)
		checksum := event.Checksum()
		input := TransformEvent(event, s.config.DefaultSpaceID, ownerID, s.config)

		switch {
		case !hasMapping:
			if !settings.CreateNewEnabled() {
				report.Skipped++
				continue
			}
			s.createEvent(ctx, snapshot, report, sourceID, checksum, input, dryRun)

		case mapping.Checksum == checksum:
			slog.DebugContext(ctx, "event unchanged, skipping", "glueup_id", sourceID)
			report.Skipped++

		default:
			if !settings.UpdateExistingEnabled() {
				report.Skipped++
				continue
			}
			s.updateEvent(ctx, snapshot, report, sourceID, mapping, checksum, input, dryRun)
		}
	}

	if settings.DeleteRemovedEnabled() {
		s.deleteRemovedEvents(ctx, snapshot, report, seen, dryRun)
	}

	slog.InfoContext(ctx, "event sync complete",
		"dry_run", dryRun,
		"created", report.Created,
		"updated", report.Updated,
		"deleted", report.Deleted,
		"skipped", report.Skipped,
		"errors", report.Errors)

	return report, nil
}

// createEvent materializes a source event in Circle and stores its mapping.
// The server may assign a different slug than requested; the server's value
// is what the mapping records.
func (s *EventSyncService) createEvent(
	ctx context.Context,
	snapshot *model.StateSnapshot,
	report *model.EventSyncReport,
	sourceID, checksum string,
	input model.CircleEventInput,
	dryRun bool,
) {
	if dryRun {
		report.Created++
		report.Details = append(report.Details, model.SyncDetail{
			Action:        model.ActionCreateEvent,
			GlueUpID:      sourceID,
			Title:         input.Name,
			Slug:          input.Slug,
			StartsAt:      input.StartsAt,
			EndsAt:        input.EndsAt,
			Location:      input.Location,
			LocationType:  input.LocationType,
			Timezone:      input.Timezone,
			HasCoverImage: input.CoverImageURL != "",
			DryRun:        true,
		})
		return
	}

	created, err := s.circle.CreateEvent(ctx, input)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create event",
			"error", err,
			"glueup_id", sourceID,
			"title", input.Name)
		report.Errors++
		report.Details = append(report.Details, model.SyncDetail{
			Action:   model.ActionCreateEvent,
			GlueUpID: sourceID,
			Title:    input.Name,
			Error:    err.Error(),
		})
		return
	}

	slug := created.Slug
	if slug == "" {
		slug = input.Slug
	}

	snapshot.SetEventMapping(sourceID, model.EventMapping{
		CircleEventID: model.FlexID(created.ID),
		Slug:          slug,
		LastSync:      epochSeconds(),
		Checksum:      checksum,
	})
	s.saveSnapshot(ctx, snapshot)

	report.Created++
	report.Details = append(report.Details, model.SyncDetail{
		Action:        model.ActionCreateEvent,
		GlueUpID:      sourceID,
		CircleEventID: created.ID,
		Title:         input.Name,
		Slug:          slug,
		StartsAt:      input.StartsAt,
		Location:      input.Location,
		LocationType:  input.LocationType,
		Result:        model.ResultSuccess,
	})

	slog.InfoContext(ctx, "created event",
		"glueup_id", sourceID,
		"circle_event_id", created.ID,
		"title", input.Name,
		"location_type", input.LocationType)
}

// updateEvent pushes changed content to the existing Circle event. The slug
// assigned at creation is preserved in the mapping; only the checksum and
// sync time are refreshed.
func (s *EventSyncService) updateEvent(
	ctx context.Context,
	snapshot *model.StateSnapshot,
	report *model.EventSyncReport,
	sourceID string,
	mapping model.EventMapping,
	checksum string,
	input model.CircleEventInput,
	dryRun bool,
) {
	circleEventID := mapping.CircleEventID.String()

	if dryRun {
		report.Updated++
		report.Details = append(report.Details, model.SyncDetail{
			Action:        model.ActionUpdateEvent,
			GlueUpID:      sourceID,
			CircleEventID: circleEventID,
			Title:         input.Name,
			DryRun:        true,
		})
		return
	}

	if err := s.circle.UpdateEvent(ctx, circleEventID, input); err != nil {
		slog.ErrorContext(ctx, "failed to update event",
			"error", err,
			"glueup_id", sourceID,
			"circle_event_id", circleEventID)
		report.Errors++
		report.Details = append(report.Details, model.SyncDetail{
			Action:        model.ActionUpdateEvent,
			GlueUpID:      sourceID,
			CircleEventID: circleEventID,
			Title:         input.Name,
			Error:         err.Error(),
		})
		return
	}

	snapshot.SetEventMapping(sourceID, model.EventMapping{
		CircleEventID: mapping.CircleEventID,
		Slug:          mapping.Slug,
		LastSync:      epochSeconds(),
		Checksum:      checksum,
	})
	s.saveSnapshot(ctx, snapshot)

	report.Updated++
	report.Details = append(report.Details, model.SyncDetail{
		Action:        model.ActionUpdateEvent,
		GlueUpID:      sourceID,
		CircleEventID: circleEventID,
		Title:         input.Name,
		Result:        model.ResultSuccess,
	})

	slog.InfoContext(ctx, "updated event",
		"glueup_id", sourceID,
		"circle_event_id", circleEventID,
		"title", input.Name)
}

// deleteRemovedEvents sweeps mappings whose source event no longer appears
// in the fetch and deletes the corresponding Circle events.
func (s *EventSyncService) deleteRemovedEvents(
	ctx context.Context,
	snapshot *model.StateSnapshot,
	report *model.EventSyncReport,
	seen map[string]struct{},
	dryRun bool,
) {
	removed := make([]string, 0)
	for sourceID := range snapshot.Events {
		if _, ok := seen[sourceID]; !ok {
			removed = append(removed, sourceID)
		}
	}
	sort.Strings(removed)

	for _, sourceID := range removed {
		mapping, ok := snapshot.EventMappingFor(sourceID)
		if !ok {
			continue
		}
		circleEventID := mapping.CircleEventID.String()

		if dryRun {
			report.Deleted++
			report.Details = append(report.Details, model.SyncDetail{
				Action:        model.ActionDeleteEvent,
				GlueUpID:      sourceID,
				CircleEventID: circleEventID,
				DryRun:        true,
			})
			continue
		}

		if err := s.circle.DeleteEvent(ctx, circleEventID, s.config.DefaultSpaceID); err != nil {
			slog.ErrorContext(ctx, "failed to delete event",
				"error", err,
				"glueup_id", sourceID,
				"circle_event_id", circleEventID)
			report.Errors++
			continue
		}

		snapshot.RemoveEventMapping(sourceID)
		s.saveSnapshot(ctx, snapshot)

		report.Deleted++
		report.Details = append(report.Details, model.SyncDetail{
			Action:        model.ActionDeleteEvent,
			GlueUpID:      sourceID,
			CircleEventID: circleEventID,
			Result:        model.ResultSuccess,
		})

		slog.InfoContext(ctx, "deleted event",
			"glueup_id", sourceID,
			"circle_event_id", circleEventID)
	}
}

// saveSnapshot persists the snapshot after a successful write, logging on
// failure. The run keeps going with in-memory state.
func (s *EventSyncService) saveSnapshot(ctx context.Context, snapshot *model.StateSnapshot) {
	if err := s.stateStore.Save(ctx, snapshot); err != nil {
		slog.WarnContext(ctx, "state save failed, continuing with in-memory state", "error", err)
	}
}

// epochSeconds returns the current time as fractional seconds since epoch,
// the resolution state timestamps are stored in.
func epochSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
