// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// GlueUpEvent is a raw event record from the GlueUp event API. Timestamps
// are milliseconds since epoch; zero means absent.
type GlueUpEvent struct {
	ID            FlexID         `json:"id"`
	Title         string         `json:"title"`
	SubTitle      string         `json:"subTitle"`
	Summary       string         `json:"summary"`
	About         string         `json:"about"`
	Description   string         `json:"description"`
	StartDateTime int64          `json:"startDateTime"`
	EndDateTime   int64          `json:"endDateTime"`
	Published     bool           `json:"published"`
	VenueInfo     *VenueInfo     `json:"venueInfo"`
	Template      *EventTemplate `json:"template"`
}

// VenueInfo is the venue block of a GlueUp event. Name, address, city, and
// country arrive either as bare strings or as reference objects.
type VenueInfo struct {
	Name     StringOrRef `json:"name"`
	Address  StringOrRef `json:"address"`
	City     StringOrRef `json:"city"`
	Country  StringOrRef `json:"country"`
	Timezone string      `json:"timezone"`
	Map      *VenueMap   `json:"map"`
}

// VenueMap carries venue coordinates.
type VenueMap struct {
	Latitude  FlexFloat `json:"latitude"`
	Longitude FlexFloat `json:"longitude"`
}

// EventTemplate carries the event's template images keyed by slot name
// ("banner", "headerImage").
type EventTemplate struct {
	Images map[string]TemplateImage `json:"images"`
}

// TemplateImage is a single template image reference.
type TemplateImage struct {
	URI string `json:"uri"`
}

// SourceID returns the canonical string form of the event's source ID,
// empty when the record carries none.
func (e *GlueUpEvent) SourceID() string {
	return e.ID.String()
}

// Checksum computes the content fingerprint used for change detection: an
// MD5 hex digest over a canonical key-sorted JSON serialization of the
// fields that matter for sync. Two events with equal checksums are treated
// as unchanged even if other fields differ.
func (e *GlueUpEvent) Checksum() string {
	var venue VenueInfo
	if e.VenueInfo != nil {
		venue = *e.VenueInfo
	}

	images := map[string]TemplateImage{}
	if e.Template != nil && e.Template.Images != nil {
		images = e.Template.Images
	}

	fields := map[string]any{
		"title":           e.Title,
		"subTitle":        e.SubTitle,
		"about":           e.About,
		"summary":         e.Summary,
		"startDateTime":   e.StartDateTime,
		"endDateTime":     e.EndDateTime,
		"venue_name":      venue.Name.String(),
		"venue_address":   venue.Address.String(),
		"venue_city":      venue.City.String(),
		"venue_country":   venue.Country.String(),
		"venue_timezone":  venue.Timezone,
		"template_images": images,
	}

	// json.Marshal sorts map keys, giving a canonical serialization.
	canonical, _ := json.Marshal(fields)
	sum := md5.Sum(canonical)
	return hex.EncodeToString(sum[:])
}
