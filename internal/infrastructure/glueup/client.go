// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package glueup implements the GlueUp API adapters for membership and
// event data, including the signed-request authentication scheme.
package glueup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/httpclient"
)

// defaultPageLimit is the page size used for offset pagination
const defaultPageLimit = 100

// eventProjection lists the event fields requested from the GlueUp API
var eventProjection = []string{
	"id",
	"title",
	"subTitle",
	"summary",
	"about",
	"description",
	"language.code",
	"defaultLanguage.code",
	"startDateTime",
	"endDateTime",
	"venueInfo.id",
	"venueInfo.name",
	"venueInfo.address",
	"venueInfo.city",
	"venueInfo.timezone",
	"venueInfo.country.name",
	"venueInfo.country.code",
	"venueInfo.map.latitude",
	"venueInfo.map.longitude",
	"template.images.banner.uri",
	"template.images.headerImage.uri",
	"published",
	"openToPublic",
	"imageUrl",
	"coverImageUrl",
}

// Client handles all GlueUp API operations with signed, token-authenticated requests
type Client struct {
	config     Config
	auth       *Auth
	httpClient *httpclient.Client
}

var _ port.GlueUpReader = (*Client)(nil)

// NewClient creates a new GlueUp client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.MockMode {
		return nil, nil // Return nil for mock mode - orchestrator will handle this
	}

	if cfg.PublicKey == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("public and private keys are required for GlueUp client")
	}

	if cfg.Email == "" || cfg.Passphrase == "" {
		return nil, fmt.Errorf("email and passphrase are required for GlueUp client")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.glueup.com"
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
	client.auth = NewAuth(cfg, client.httpClient)

	slog.InfoContext(context.Background(), "GlueUp client initialized",
		"base_url", cfg.BaseURL)

	return client, nil
}

// ListIndividualMembers retrieves all individual membership records,
// paging through the membership directory
func (c *Client) ListIndividualMembers(ctx context.Context) ([]model.IndividualMemberRecord, error) {
	var all []model.IndividualMemberRecord

	for offset := 0; ; offset += defaultPageLimit {
		request := directoryRequest{
			Projection: []string{},
			Filter:     []requestFilter{},
			Order:      map[string]string{"familyName": "asc"},
			Offset:     offset,
			Limit:      defaultPageLimit,
		}

		var envelope individualEnvelope
		if err := c.postList(ctx, c.config.MembersEndpoint, request, true, &envelope); err != nil {
			return nil, err
		}

		all = append(all, envelope.Value...)
		if len(envelope.Value) < defaultPageLimit {
			break
		}
	}

	slog.InfoContext(ctx, "fetched individual members from GlueUp", "count", len(all))
	return all, nil
}

// ListCorporateMemberships retrieves all corporate membership records,
// paging through the corporate membership directory
func (c *Client) ListCorporateMemberships(ctx context.Context) ([]model.CorporateMembershipRecord, error) {
	var all []model.CorporateMembershipRecord

	for offset := 0; ; offset += defaultPageLimit {
		request := directoryRequest{
			Projection: []string{},
			Filter:     []requestFilter{},
			Order:      map[string]string{"name": "asc"},
			Offset:     offset,
			Limit:      defaultPageLimit,
		}

		var envelope corporateEnvelope
		if err := c.postList(ctx, c.config.CorporateEndpoint, request, true, &envelope); err != nil {
			return nil, err
		}

		all = append(all, envelope.Value...)
		if len(envelope.Value) < defaultPageLimit {
			break
		}
	}

	slog.InfoContext(ctx, "fetched corporate memberships from GlueUp", "count", len(all))
	return all, nil
}

// ListEvents retrieves events, optionally restricted to published and future ones
func (c *Client) ListEvents(ctx context.Context, publishedOnly, futureOnly bool) ([]model.GlueUpEvent, error) {
	filters := []requestFilter{}
	if publishedOnly {
		filters = append(filters, requestFilter{
			Projection: "published",
			Operator:   "eq",
			Values:     []any{true},
		})
	}
	if futureOnly {
		filters = append(filters, requestFilter{
			Projection: "endDateTime",
			Operator:   "gt",
			Values:     []any{time.Now().UnixMilli()},
		})
	}

	var all []model.GlueUpEvent

	for offset := 0; ; offset += defaultPageLimit {
		request := directoryRequest{
			Projection: eventProjection,
			Filter:     filters,
			Order:      map[string]string{"startDateTime": "asc"},
			Offset:     offset,
			Limit:      defaultPageLimit,
		}

		var envelope eventEnvelope
		if err := c.postList(ctx, c.config.EventsEndpoint, request, false, &envelope); err != nil {
			return nil, err
		}

		all = append(all, envelope.Value...)
		if len(envelope.Value) < defaultPageLimit {
			break
		}
	}

	slog.InfoContext(ctx, "fetched events from GlueUp",
		"count", len(all),
		"published_only", publishedOnly,
		"future_only", futureOnly)

	return all, nil
}

// postList centralizes signed list requests with authentication and error handling
func (c *Client) postList(ctx context.Context, path string, request directoryRequest, directory bool, result any) error {
	headers, err := c.auth.Headers(ctx, http.MethodPost)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Directory endpoints are scoped to an organization
	if directory {
		headers[constants.GlueUpOrganizationHeader] = c.config.OrganizationID
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	reqURL := c.config.BaseURL + path

	resp, err := c.httpClient.Request(ctx, http.MethodPost, reqURL, strings.NewReader(string(body)), headers)
	if err != nil {
		return MapHTTPError(ctx, err)
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
