// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
)

const (
	// defaultEventTitle is used when a source event carries no title.
	defaultEventTitle = "Untitled Event"

	// defaultEventHost is the host shown on synced events unless overridden.
	defaultEventHost = "GlueUp Events"

	// coverImageSize replaces the source API's size placeholder in image URIs.
	coverImageSize = "1200x630"

	// maxSlugLength bounds generated slugs.
	maxSlugLength = 100

	// isoLocalFormat renders timestamps as local ISO 8601 without an offset.
	isoLocalFormat = "2006-01-02T15:04:05"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[-\s]+`)

	// virtualVenueKeywords classify a venue as virtual when its name
	// contains any of them.
	virtualVenueKeywords = []string{"online", "virtual", "webinar", "zoom", "teams", "meet"}
)

// Slugify converts text to a URL-safe slug: lowercased, non-word characters
// stripped, whitespace and hyphen runs collapsed to single hyphens, bounded
// length.
func Slugify(text string) string {
	text = strings.ToLower(text)
	text = slugStripPattern.ReplaceAllString(text, "")
	text = slugCollapsePattern.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")
	if len(text) > maxSlugLength {
		text = text[:maxSlugLength]
	}
	return text
}

// EventSlug derives the slug for a source event. The source ID suffix keeps
// slugs unique even when two events share a title.
func EventSlug(title, sourceID string) string {
	return Slugify(title + "-" + sourceID)
}

// formatLocalTime converts a millisecond epoch timestamp to a local ISO 8601
// string, empty when absent.
func formatLocalTime(ms int64) string {
	if ms == 0 {
		return ""
	}
	t := time.UnixMilli(ms)
	if t.Nanosecond() == 0 {
		return t.Format(isoLocalFormat)
	}
	return t.Format(isoLocalFormat + ".000000")
}

// buildLocation assembles a display location from venue name, address, city,
// and country, in that order, comma-joined, omitting absent parts.
func buildLocation(venue *model.VenueInfo) string {
	if venue == nil {
		return ""
	}

	var parts []string
	for _, value := range []string{
		venue.Name.String(),
		venue.Address.String(),
		venue.City.String(),
		venue.Country.String(),
	} {
		if value != "" {
			parts = append(parts, value)
		}
	}

	return strings.Join(parts, ", ")
}

// detectLocationType classifies an event as virtual, in-person, or TBD from
// its venue. A venue name containing a virtual keyword wins over physical
// address components.
func detectLocationType(venue *model.VenueInfo) string {
	if venue == nil {
		return model.LocationTypeTBD
	}

	name := strings.ToLower(venue.Name.String())
	for _, keyword := range virtualVenueKeywords {
		if strings.Contains(name, keyword) {
			return model.LocationTypeVirtual
		}
	}

	if venue.Address.String() != "" || venue.City.String() != "" {
		return model.LocationTypeInPerson
	}

	return model.LocationTypeTBD
}

// extractCoverImage returns the event's cover image URL from the template's
// banner slot, falling back to the header image slot. Relative paths cannot
// be resolved without a base URL and are dropped.
func extractCoverImage(event *model.GlueUpEvent) string {
	if event.Template == nil {
		return ""
	}
	images := event.Template.Images

	if uri := images["banner"].URI; uri != "" {
		return resolveImageURI(uri)
	}
	if uri := images["headerImage"].URI; uri != "" {
		return resolveImageURI(uri)
	}
	return ""
}

func resolveImageURI(uri string) string {
	uri = strings.ReplaceAll(uri, "::size::", coverImageSize)
	if strings.HasPrefix(uri, "/") {
		return ""
	}
	return uri
}

// TransformEvent maps a source event onto the Circle event payload. The
// mapping is deterministic: the same event, space, owner, and configuration
// always produce the same payload.
func TransformEvent(event *model.GlueUpEvent, spaceID string, ownerID int64, config EventSyncConfig) model.CircleEventInput {
	title := event.Title
	if title == "" {
		title = defaultEventTitle
	}

	// The richest available text field wins.
	description := event.About
	if description == "" {
		description = event.Summary
	}
	if description == "" {
		description = event.Description
	}
	if event.SubTitle != "" {
		description = "<p><strong>" + event.SubTitle + "</strong></p>\n" + description
	}

	venue := event.VenueInfo
	overrides := config.FieldOverrides

	locationType := detectLocationType(venue)
	if overrides.LocationType != "" {
		locationType = overrides.LocationType
	}

	host := defaultEventHost
	if overrides.Host != "" {
		host = overrides.Host
	}

	rsvpDisabled := false
	if overrides.RSVPDisabled != nil {
		rsvpDisabled = *overrides.RSVPDisabled
	}

	sendEmailConfirmation := true
	if overrides.SendEmailConfirmation != nil {
		sendEmailConfirmation = *overrides.SendEmailConfirmation
	}

	sendEmailReminder := true
	if overrides.SendEmailReminder != nil {
		sendEmailReminder = *overrides.SendEmailReminder
	}

	input := model.CircleEventInput{
		Name:                  title,
		Slug:                  EventSlug(title, event.SourceID()),
		Body:                  description,
		StartsAt:              formatLocalTime(event.StartDateTime),
		EndsAt:                formatLocalTime(event.EndDateTime),
		Location:              buildLocation(venue),
		LocationType:          locationType,
		Host:                  host,
		RSVPDisabled:          rsvpDisabled,
		SendEmailConfirmation: sendEmailConfirmation,
		SendEmailReminder:     sendEmailReminder,
		UserID:                ownerID,
		SpaceID:               spaceID,
		CoverImageURL:         extractCoverImage(event),
	}

	if venue != nil {
		input.Timezone = venue.Timezone
		input.VenueName = venue.Name.String()
		input.VenueAddress = venue.Address.String()
		input.VenueCity = venue.City.String()
		input.VenueCountry = venue.Country.String()

		if venue.Map != nil && venue.Map.Latitude.Set && venue.Map.Longitude.Set {
			latitude := venue.Map.Latitude.Value
			longitude := venue.Map.Longitude.Value
			input.VenueLatitude = &latitude
			input.VenueLongitude = &longitude
		}
	}

	return input
}
