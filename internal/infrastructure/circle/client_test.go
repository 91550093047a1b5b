// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package circle

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIToken = "circle-token"
	cfg.Timeout = 5 * time.Second
	cfg.MaxRetries = 0

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	cfg := DefaultConfig()

	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API token is required")
}

func TestClientSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer circle-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"records": [], "has_next_page": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ListSpaces(context.Background())
	require.NoError(t, err)
}

func TestListSpaces_Pagination(t *testing.T) {
	var pages []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/spaces", r.URL.Path)
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		if page == "1" {
			fmt.Fprint(w, `{"records": [{"id": 101, "name": "general"}, {"id": 102, "name": "events"}], "has_next_page": true}`)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": "103", "name": "gold-members"}], "has_next_page": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	spaces, err := client.ListSpaces(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, pages)
	assert.Equal(t, []model.CircleSpace{
		{ID: "101", Name: "general"},
		{ID: "102", Name: "events"},
		{ID: "103", Name: "gold-members"},
	}, spaces)
}

func TestListSpaces_MissingRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"spaces": []}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ListSpaces(context.Background())
	require.Error(t, err)

	var validationErr errors.Validation
	assert.True(t, stderrors.As(err, &validationErr))
}

func TestListSpaceMembers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/space_members", r.URL.Path)
		assert.Equal(t, "101", r.URL.Query().Get("space_id"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		fmt.Fprint(w, `{"records": [{"id": 7, "email": "jane@example.com", "name": "Jane Doe"}], "has_next_page": true}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	members, hasNext, err := client.ListSpaceMembers(context.Background(), "101", 2)
	require.NoError(t, err)

	assert.True(t, hasNext)
	require.Len(t, members, 1)
	assert.Equal(t, model.CircleMember{ID: "7", Email: "jane@example.com", Name: "Jane Doe"}, members[0])
}

func TestListAllMembers_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/community_members", r.URL.Path)

		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"records": [{"id": 1, "email": "a@example.com"}], "has_next_page": true}`)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": 2, "email": "b@example.com"}], "has_next_page": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	members, err := client.ListAllMembers(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 2)
	assert.Equal(t, "a@example.com", members[0].Email)
	assert.Equal(t, "b@example.com", members[1].Email)
}

func TestResolveOwnerIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"records": [{"id": 1, "email": "other@example.com"}], "has_next_page": true}`)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": 42, "email": "Admin@Example.com"}], "has_next_page": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	id, err := client.ResolveOwnerIdentity(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestResolveOwnerIdentity_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"records": [], "has_next_page": false}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ResolveOwnerIdentity(context.Background(), "ghost@example.com")
	require.Error(t, err)

	var notFoundErr errors.NotFound
	assert.True(t, stderrors.As(err, &notFoundErr))
}

func TestInviteMember_BodyShape(t *testing.T) {
	tests := []struct {
		name         string
		displayName  string
		expectedBody map[string]any
	}{
		{
			name:        "full name",
			displayName: "Jane van der Doe",
			expectedBody: map[string]any{
				"email":      "jane@example.com",
				"first_name": "Jane",
				"last_name":  "van der Doe",
				"space_ids":  []any{"g1", "g2"},
			},
		},
		{
			name:        "single token name keeps empty last name",
			displayName: "Jane",
			expectedBody: map[string]any{
				"email":      "jane@example.com",
				"first_name": "Jane",
				"last_name":  "",
				"space_ids":  []any{"g1", "g2"},
			},
		},
		{
			name:        "no name omits name fields",
			displayName: "",
			expectedBody: map[string]any{
				"email":     "jane@example.com",
				"space_ids": []any{"g1", "g2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/community_members", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				fmt.Fprint(w, `{}`)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			err := client.InviteMember(context.Background(), "jane@example.com", tt.displayName, []string{"g1", "g2"})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestAddMemberToSpace(t *testing.T) {
	var body map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/space_members", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.AddMemberToSpace(context.Background(), "jane@example.com", "g1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "jane@example.com", "space_id": "g1"}, body)
}

func TestRemoveMemberFromSpace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/space_members", r.URL.Path)
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
		assert.Equal(t, "g1", r.URL.Query().Get("space_id"))
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.RemoveMemberFromSpace(context.Background(), "jane@example.com", "g1")
	require.NoError(t, err)
}

func TestCreateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/events", r.URL.Path)

		var input model.CircleEventInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Launch", input.Name)

		fmt.Fprint(w, `{"id": 9001, "slug": "launch-42-server"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	created, err := client.CreateEvent(context.Background(), model.CircleEventInput{
		Name:    "Launch",
		Slug:    "launch-42",
		SpaceID: "g9",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CreatedEvent{ID: "9001", Slug: "launch-42-server"}, created)
}

func TestCreateEvent_MissingIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "accepted"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.CreateEvent(context.Background(), model.CircleEventInput{Name: "Launch"})
	require.Error(t, err)

	var validationErr errors.Validation
	assert.True(t, stderrors.As(err, &validationErr))
}

func TestUpdateEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/events/9001", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.UpdateEvent(context.Background(), "9001", model.CircleEventInput{Name: "Launch v2"})
	require.NoError(t, err)
}

func TestDeleteEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/events/9001", r.URL.Path)
		assert.Equal(t, "g9", r.URL.Query().Get("space_id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.DeleteEvent(context.Background(), "9001", "g9")
	require.NoError(t, err)
}

func TestMapHTTPErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			var target errors.NotFound
			assert.True(t, stderrors.As(err, &target))
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			var target errors.Unauthorized
			assert.True(t, stderrors.As(err, &target))
		}},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) {
			var target errors.Unauthorized
			assert.True(t, stderrors.As(err, &target))
		}},
		{"conflict", http.StatusConflict, func(t *testing.T, err error) {
			var target errors.Conflict
			assert.True(t, stderrors.As(err, &target))
		}},
		{"unprocessable", http.StatusUnprocessableEntity, func(t *testing.T, err error) {
			var target errors.Validation
			assert.True(t, stderrors.As(err, &target))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			err := client.AddMemberToSpace(context.Background(), "jane@example.com", "g1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedFirst string
		expectedLast  string
	}{
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"multi token surname", "Jane van der Doe", "Jane", "van der Doe"},
		{"single token", "Jane", "Jane", ""},
		{"surrounding whitespace", "  Jane Doe  ", "Jane", "Doe"},
		{"inner spacing preserved", "Jane  Doe  Smith", "Jane", "Doe  Smith"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.input)
			assert.Equal(t, tt.expectedFirst, first)
			assert.Equal(t, tt.expectedLast, last)
		})
	}
}
