// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	errs "github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// registerRoutes wires the HTTP surface onto the mux.
func registerRoutes(mux *http.ServeMux, b *bridge) {
	mux.HandleFunc("/livez", b.handleLivez)
	mux.HandleFunc("/readyz", b.handleReadyz)
	mux.HandleFunc("/health", b.handleHealth)
	mux.HandleFunc("/spaces", b.handleListSpaces)
	mux.HandleFunc("/state/stats", b.handleStateStats)
	mux.HandleFunc("/sync/members", b.handleSyncMembers)
	mux.HandleFunc("/sync/events", b.handleSyncEvents)
	mux.HandleFunc("/sync/validate-cache", b.handleValidateCache)
	mux.HandleFunc("/webhooks/glueup", b.handleWebhook)
}

type syncMembersRequest struct {
	DryRun *bool `json:"dry_run"`
}

type syncEventsRequest struct {
	DryRun *bool `json:"dry_run"`
	UserID int64 `json:"user_id"`
}

type validateCacheRequest struct {
	Repair bool `json:"repair"`
}

func (b *bridge) handleLivez(w http.ResponseWriter, _ *http.Request) {
	// This always returns as long as the service is still running. As this
	// endpoint is expected to be used as a Kubernetes liveness check, this
	// service must likewise self-detect non-recoverable errors and
	// self-terminate.
	fmt.Fprintf(w, "OK\n")
}

func (b *bridge) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := b.stateStore.IsReady(r.Context()); err != nil {
		http.Error(w, "state store not ready", http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintf(w, "OK\n")
}

func (b *bridge) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"service": constants.ServiceName,
		"status":  "ok",
	})
}

func (b *bridge) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := b.circle.ListSpaces(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"spaces": spaces,
		"count":  len(spaces),
	})
}

func (b *bridge) handleStateStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := b.stateStore.Load(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, snapshot.Stats())
}

func (b *bridge) handleSyncMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req syncMembersRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	// Sync runs are dry by default; callers opt into live changes.
	dryRun := true
	if req.DryRun != nil {
		dryRun = *req.DryRun
	}

	report, err := b.coordinator.RunMemberSync(r.Context(), dryRun)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, report)
}

func (b *bridge) handleSyncEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req syncEventsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	dryRun := true
	if req.DryRun != nil {
		dryRun = *req.DryRun
	}

	report, err := b.coordinator.RunEventSync(r.Context(), dryRun, req.UserID)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, report)
}

func (b *bridge) handleValidateCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req validateCacheRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	report, err := b.coordinator.RunCacheValidation(r.Context(), req.Repair)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, report)
}

func (b *bridge) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, ok := r.Context().Value(constants.WebhookBodyContextKey).([]byte)
	if !ok || len(body) == 0 {
		writeError(r.Context(), w, errs.NewBadRequest("missing webhook payload"))
		return
	}

	signature := r.Header.Get(constants.WebhookSignatureHeader)
	result, err := b.webhooks.ProcessWebhook(r.Context(), body, signature)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, result)
}

// decodeJSONBody parses an optional JSON request body. An empty body leaves
// dst untouched so callers keep their defaults.
func decodeJSONBody(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errs.NewBadRequest("invalid JSON request body", err)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(ctx, "error encoding response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	slog.ErrorContext(ctx, "request failed", "error", err)

	// Unwrap to get the underlying error for direct type assertion
	unwrappedErr := errors.Unwrap(err)
	if unwrappedErr == nil {
		unwrappedErr = err
	}

	status := http.StatusInternalServerError
	switch unwrappedErr.(type) {
	case errs.Validation, errs.BadRequest:
		status = http.StatusBadRequest
	case errs.Unauthorized:
		status = http.StatusUnauthorized
	case errs.NotFound:
		status = http.StatusNotFound
	case errs.Conflict:
		status = http.StatusConflict
	case errs.ServiceUnavailable:
		status = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, status, map[string]string{"error": err.Error()})
}
