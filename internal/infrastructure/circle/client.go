// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package circle implements the Circle admin API adapter used for
// community membership, space membership, and event management.
package circle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/httpclient"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/redaction"
)

const (
	communityMembersEndpoint = "/community_members"
	spaceMembersEndpoint     = "/space_members"
	spacesEndpoint           = "/spaces"
	eventsEndpoint           = "/events"

	// perPage is the page size used for page-number pagination
	perPage = 100
)

// circleBearerAuthRoundTripper injects the bearer token on every request
type circleBearerAuthRoundTripper struct {
	tokenSource oauth2.TokenSource
}

// RoundTrip adds the Authorization header from the token source
func (rt *circleBearerAuthRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	token, err := rt.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain Circle API token: %w", err)
	}
	token.SetAuthHeader(req)
	return next(req)
}

// Client handles all Circle admin API operations
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

var _ port.CircleRegistry = (*Client)(nil)

// NewClient creates a new Circle client authenticated with the configured API token
func NewClient(cfg Config) (*Client, error) {
	if cfg.MockMode {
		return nil, nil // Return nil for mock mode - orchestrator will handle this
	}

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API token is required for Circle client")
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIToken,
		TokenType:   "Bearer",
	})

	return NewClientWithTokenSource(cfg, tokenSource)
}

// NewClientWithTokenSource creates a Circle client with an injected token
// source, for deployments that rotate credentials outside the process
func NewClientWithTokenSource(cfg Config, tokenSource oauth2.TokenSource) (*Client, error) {
	if tokenSource == nil {
		return nil, fmt.Errorf("token source is required for Circle client")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://app.circle.so/api/admin/v2"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}
	client.httpClient.AddRoundTripper(&circleBearerAuthRoundTripper{tokenSource: tokenSource})

	slog.InfoContext(context.Background(), "Circle client initialized",
		"base_url", cfg.BaseURL)

	return client, nil
}

// ListSpaces retrieves all spaces in the community
func (c *Client) ListSpaces(ctx context.Context) ([]model.CircleSpace, error) {
	var all []model.CircleSpace

	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		}

		var envelope spacesPage
		if err := c.request(ctx, http.MethodGet, spacesEndpoint, params, nil, &envelope); err != nil {
			return nil, err
		}
		if envelope.Records == nil {
			return nil, errors.NewValidation("unexpected space listing response from Circle")
		}

		for _, record := range envelope.Records {
			all = append(all, record.toModel())
		}
		if !envelope.HasNextPage {
			break
		}
	}

	slog.InfoContext(ctx, "fetched spaces from Circle", "count", len(all))
	return all, nil
}

// ListSpaceMembers retrieves one page of members for a space and reports
// whether more pages follow
func (c *Client) ListSpaceMembers(ctx context.Context, spaceID string, page int) ([]model.CircleMember, bool, error) {
	params := url.Values{
		"space_id": {spaceID},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var envelope membersPage
	if err := c.request(ctx, http.MethodGet, spaceMembersEndpoint, params, nil, &envelope); err != nil {
		return nil, false, err
	}
	if envelope.Records == nil {
		return nil, false, errors.NewValidation("unexpected space member listing response from Circle")
	}

	members := make([]model.CircleMember, 0, len(envelope.Records))
	for _, record := range envelope.Records {
		members = append(members, record.toModel())
	}

	return members, envelope.HasNextPage, nil
}

// ListAllMembers retrieves all community members across pages
func (c *Client) ListAllMembers(ctx context.Context) ([]model.CircleMember, error) {
	var all []model.CircleMember

	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		}

		var envelope membersPage
		if err := c.request(ctx, http.MethodGet, communityMembersEndpoint, params, nil, &envelope); err != nil {
			return nil, err
		}
		if envelope.Records == nil {
			return nil, errors.NewValidation("unexpected member listing response from Circle")
		}

		for _, record := range envelope.Records {
			all = append(all, record.toModel())
		}
		if !envelope.HasNextPage {
			break
		}
	}

	slog.InfoContext(ctx, "fetched community members from Circle", "count", len(all))
	return all, nil
}

// ResolveOwnerIdentity looks up the community member ID for the given email
func (c *Client) ResolveOwnerIdentity(ctx context.Context, email string) (int64, error) {
	normalized := model.NormalizeEmail(email)
	if normalized == "" {
		return 0, errors.NewValidation("owner email is required")
	}

	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		}

		var envelope membersPage
		if err := c.request(ctx, http.MethodGet, communityMembersEndpoint, params, nil, &envelope); err != nil {
			return 0, err
		}
		if envelope.Records == nil {
			return 0, errors.NewValidation("unexpected member listing response from Circle")
		}

		for _, record := range envelope.Records {
			if model.NormalizeEmail(record.Email) != normalized {
				continue
			}

			id, err := strconv.ParseInt(record.ID.String(), 10, 64)
			if err != nil {
				return 0, errors.NewValidation(
					fmt.Sprintf("community member %s has non-numeric ID %q", redaction.RedactEmail(email), record.ID))
			}

			slog.InfoContext(ctx, "resolved Circle owner identity",
				"email", redaction.RedactEmail(email), "member_id", id)
			return id, nil
		}

		if !envelope.HasNextPage {
			break
		}
	}

	return 0, errors.NewNotFound(
		fmt.Sprintf("community member %s not found in Circle", redaction.RedactEmail(email)))
}

// InviteMember invites a new community member and grants the given spaces
func (c *Client) InviteMember(ctx context.Context, email, name string, spaceIDs []string) error {
	slog.InfoContext(ctx, "inviting member to Circle",
		"email", redaction.RedactEmail(email),
		"spaces", spaceIDs)

	body := inviteRequest{
		Email:    email,
		SpaceIDs: spaceIDs,
	}
	if name != "" {
		first, last := splitName(name)
		body.FirstName = &first
		body.LastName = &last
	}

	return c.request(ctx, http.MethodPost, communityMembersEndpoint, nil, body, nil)
}

// AddMemberToSpace adds an existing community member to a space
func (c *Client) AddMemberToSpace(ctx context.Context, email, spaceID string) error {
	slog.InfoContext(ctx, "adding member to Circle space",
		"email", redaction.RedactEmail(email),
		"space_id", spaceID)

	body := spaceMemberRequest{Email: email, SpaceID: spaceID}
	return c.request(ctx, http.MethodPost, spaceMembersEndpoint, nil, body, nil)
}

// RemoveMemberFromSpace removes a community member from a space
func (c *Client) RemoveMemberFromSpace(ctx context.Context, email, spaceID string) error {
	slog.InfoContext(ctx, "removing member from Circle space",
		"email", redaction.RedactEmail(email),
		"space_id", spaceID)

	params := url.Values{
		"email":    {email},
		"space_id": {spaceID},
	}
	return c.request(ctx, http.MethodDelete, spaceMembersEndpoint, params, nil, nil)
}

// CreateEvent creates an event and returns its server-assigned identity
func (c *Client) CreateEvent(ctx context.Context, input model.CircleEventInput) (model.CreatedEvent, error) {
	slog.InfoContext(ctx, "creating event in Circle",
		"name", input.Name, "slug", input.Slug, "space_id", input.SpaceID)

	var record eventRecord
	if err := c.request(ctx, http.MethodPost, eventsEndpoint, nil, input, &record); err != nil {
		return model.CreatedEvent{}, err
	}
	if record.ID == "" {
		return model.CreatedEvent{}, errors.NewValidation("no event identity in Circle response")
	}

	slog.InfoContext(ctx, "event created in Circle",
		"event_id", record.ID.String(), "slug", record.Slug)

	return model.CreatedEvent{ID: record.ID.String(), Slug: record.Slug}, nil
}

// UpdateEvent updates an existing event in place
func (c *Client) UpdateEvent(ctx context.Context, eventID string, input model.CircleEventInput) error {
	slog.InfoContext(ctx, "updating event in Circle",
		"event_id", eventID, "slug", input.Slug)

	path := eventsEndpoint + "/" + url.PathEscape(eventID)
	return c.request(ctx, http.MethodPut, path, nil, input, nil)
}

// DeleteEvent deletes an event from a space
func (c *Client) DeleteEvent(ctx context.Context, eventID, spaceID string) error {
	slog.InfoContext(ctx, "deleting event from Circle",
		"event_id", eventID, "space_id", spaceID)

	path := eventsEndpoint + "/" + url.PathEscape(eventID)
	params := url.Values{"space_id": {spaceID}}
	return c.request(ctx, http.MethodDelete, path, params, nil, nil)
}

// splitName splits a display name into first and last name the way the
// invite endpoint expects, keeping everything after the first word together
func splitName(name string) (first, last string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ""
	}

	fields := strings.Fields(trimmed)
	first = fields[0]
	last = strings.TrimLeft(trimmed[len(first):], " \t\r\n")
	return first, last
}

// request centralizes all API calls with authentication and error handling
func (c *Client) request(ctx context.Context, method, path string, params url.Values, body any, result any) error {
	reqURL := c.config.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reader io.Reader
	headers := map[string]string{}

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = strings.NewReader(string(encoded))
		headers[constants.ContentTypeHeader] = constants.ContentTypeJSON
	}

	resp, err := c.httpClient.Request(ctx, method, reqURL, reader, headers)
	if err != nil {
		return MapHTTPError(ctx, err)
	}

	if result != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
