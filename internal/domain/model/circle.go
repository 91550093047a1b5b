// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// CircleSpace is a space in the community platform.
type CircleSpace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CircleMember is a community platform member as returned by the admin API.
type CircleMember struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// CreatedEvent is the identifying subset of a freshly created platform
// event. The server may assign a different slug than requested; the
// server's value wins.
type CreatedEvent struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

// Location type classifications for synced events.
const (
	LocationTypeVirtual  = "virtual"
	LocationTypeInPerson = "in_person"
	LocationTypeTBD      = "tbd"
)

// CircleEventInput is the typed event payload sent to the community
// platform's event API.
type CircleEventInput struct {
	Name                  string   `json:"name"`
	Slug                  string   `json:"slug"`
	Body                  string   `json:"body"`
	StartsAt              string   `json:"starts_at,omitempty"`
	EndsAt                string   `json:"ends_at,omitempty"`
	Location              string   `json:"location,omitempty"`
	LocationType          string   `json:"location_type"`
	Host                  string   `json:"host"`
	RSVPDisabled          bool     `json:"rsvp_disabled"`
	SendEmailConfirmation bool     `json:"send_email_confirmation"`
	SendEmailReminder     bool     `json:"send_email_reminder"`
	UserID                int64    `json:"user_id"`
	SpaceID               string   `json:"space_id"`
	CoverImageURL         string   `json:"cover_image_url,omitempty"`
	Timezone              string   `json:"timezone,omitempty"`
	VenueName             string   `json:"venue_name,omitempty"`
	VenueAddress          string   `json:"venue_address,omitempty"`
	VenueCity             string   `json:"venue_city,omitempty"`
	VenueCountry          string   `json:"venue_country,omitempty"`
	VenueLatitude         *float64 `json:"venue_latitude,omitempty"`
	VenueLongitude        *float64 `json:"venue_longitude,omitempty"`
}

// EventFieldOverrides lets configuration pin fields of the generated event
// payload. Nil pointers mean "use the default".
type EventFieldOverrides struct {
	LocationType          string `json:"location_type,omitempty"          yaml:"location_type"`
	Host                  string `json:"host,omitempty"                   yaml:"host"`
	RSVPDisabled          *bool  `json:"rsvp_disabled,omitempty"          yaml:"rsvp_disabled"`
	SendEmailConfirmation *bool  `json:"send_email_confirmation,omitempty" yaml:"send_email_confirmation"`
	SendEmailReminder     *bool  `json:"send_email_reminder,omitempty"    yaml:"send_email_reminder"`
}
