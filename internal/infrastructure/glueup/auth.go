// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package glueup

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/httpclient"
)

const (
	sessionEndpoint = "/v2/user/session"

	// tokenExpiryBuffer refreshes the session token 60 seconds before expiry
	tokenExpiryBuffer = 60 * time.Second

	// defaultTokenTTL is used when the session response carries no usable expiry
	defaultTokenTTL = 10 * time.Minute
)

// TokenProvider supplies a valid GlueUp session token
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Auth handles GlueUp API authentication and header generation.
//
// Every authenticated request carries two headers: a per-request HMAC
// signature ("a") and a cached session token ("token"). The session token
// is obtained from the user session endpoint and refreshed with
// double-check locking so concurrent callers trigger a single refresh.
type Auth struct {
	config     Config
	httpClient *httpclient.Client

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewAuth creates an authentication handler for the given configuration
func NewAuth(cfg Config, httpClient *httpclient.Client) *Auth {
	return &Auth{
		config:     cfg,
		httpClient: httpClient,
	}
}

// SignatureHeader generates the per-request "a" header.
//
// Format: v=<version>;k=<publicKey>;ts=<millis>;d=<hex hmac-sha256 digest>
// where the digest is computed over METHOD+publicKey+version+millis with the
// private key as the HMAC secret.
func (a *Auth) SignatureHeader(method string) string {
	timestampMillis := time.Now().UnixMilli()
	baseString := fmt.Sprintf("%s%s%s%d",
		strings.ToUpper(method), a.config.PublicKey, a.config.Version, timestampMillis)

	mac := hmac.New(sha256.New, []byte(a.config.PrivateKey))
	mac.Write([]byte(baseString))
	digest := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("v=%s;k=%s;ts=%d;d=%s", a.config.Version, a.config.PublicKey, timestampMillis, digest)
}

// Token returns a valid session token, authenticating when necessary
func (a *Auth) Token(ctx context.Context) (string, error) {
	a.mu.RLock()
	if a.tokenValid() {
		token := a.token
		a.mu.RUnlock()
		return token, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring the lock (another goroutine may have refreshed)
	if a.tokenValid() {
		return a.token, nil
	}

	slog.InfoContext(ctx, "GlueUp session token expired or not present, authenticating")
	return a.authenticate(ctx)
}

// Headers returns all headers required for an authenticated GlueUp request
func (a *Auth) Headers(ctx context.Context, method string) (map[string]string, error) {
	token, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		constants.GlueUpSignatureHeader: a.SignatureHeader(method),
		constants.GlueUpTokenHeader:     token,
		constants.ContentTypeHeader:     constants.ContentTypeJSON,
	}, nil
}

// tokenValid reports whether the cached token exists and will not expire
// within the buffer period. Callers must hold at least a read lock.
func (a *Auth) tokenValid() bool {
	if a.token == "" || a.tokenExpiry.IsZero() {
		return false
	}
	return time.Now().Before(a.tokenExpiry.Add(-tokenExpiryBuffer))
}

// authenticate obtains a new session token. Callers must hold the write lock.
func (a *Auth) authenticate(ctx context.Context) (string, error) {
	authCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	// GlueUp requires the passphrase MD5-hashed in the session request
	passphraseHash := md5.Sum([]byte(a.config.Passphrase))

	payload := sessionRequest{
		Email:      sessionValue{Value: a.config.Email},
		Passphrase: sessionValue{Value: hex.EncodeToString(passphraseHash[:])},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode session request: %w", err)
	}

	headers := map[string]string{
		constants.GlueUpSignatureHeader: a.SignatureHeader(http.MethodPost),
		constants.ContentTypeHeader:     constants.ContentTypeJSON,
	}

	sessionURL := a.config.BaseURL + sessionEndpoint
	resp, err := a.httpClient.Request(authCtx, http.MethodPost, sessionURL, strings.NewReader(string(body)), headers)
	if err != nil {
		return "", fmt.Errorf("session request failed: %w", MapHTTPError(authCtx, err))
	}

	var session sessionEnvelope
	if err := json.Unmarshal(resp.Body, &session); err != nil {
		return "", fmt.Errorf("session response parse failed: %w", err)
	}

	token := session.Value.Token
	if token == "" {
		return "", fmt.Errorf("no token in session response")
	}

	expiry := time.UnixMilli(session.Value.Expiry)
	if session.Value.Expiry <= 0 {
		expiry = parseTokenExpiry(token)
	}

	a.token = token
	a.tokenExpiry = expiry

	slog.InfoContext(ctx, "GlueUp authentication successful",
		"expires_at", expiry.Format(time.RFC3339))

	return token, nil
}

// parseTokenExpiry extracts expiry from a JWT session token, falling back
// to a default TTL when the token carries no usable exp claim
func parseTokenExpiry(token string) time.Time {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}

	_, _, err := parser.ParseUnverified(token, &claims)
	if err != nil {
		slog.Warn("failed to parse session token as JWT", "error", err)
		return time.Now().Add(defaultTokenTTL)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		slog.Warn("no expiry in session token", "error", err)
		return time.Now().Add(defaultTokenTTL)
	}

	return exp.Time
}
