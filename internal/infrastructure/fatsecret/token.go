package fatsecret

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// expirySkew refreshes tokens slightly before the server-side expiry
const expirySkew = 60 * time.Second

// IsMockClientID reports whether clientID is a placeholder that must never
// reach the token endpoint. Lookups then run in degraded mode.
func IsMockClientID(clientID string) bool {
	switch strings.TrimSpace(clientID) {
	case "", "mock", "mock_id":
		return true
	}
	return false
}

// TokenConfig holds the client-credentials grant settings
type TokenConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Timeout      time.Duration
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenManager obtains and memoizes the OAuth bearer token.
// Concurrent first fetches share a single grant request.
type TokenManager struct {
	cfg        TokenConfig
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt time.Time // zero means valid for the process lifetime

	group singleflight.Group
}

// NewTokenManager creates a token manager; no request is made until the first Token call
func NewTokenManager(cfg TokenConfig, logger *zap.Logger) *TokenManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("token"),
		now:    time.Now,
	}
}

// Token returns a valid bearer token, fetching one if needed.
// It never fails loudly: any problem is logged and reported as ("", false).
func (m *TokenManager) Token(ctx context.Context) (string, bool) {
	if IsMockClientID(m.cfg.ClientID) {
		m.logger.Debug("mock credentials configured, skipping token grant")
		return "", false
	}

	if token, ok := m.cached(); ok {
		return token, true
	}

	// The grant outlives any single caller so one cancelled request cannot fail its siblings
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := m.group.Do("token", func() (interface{}, error) {
		if token, ok := m.cached(); ok {
			return token, nil
		}
		return m.fetch(fetchCtx)
	})
	if err != nil {
		m.logger.Warn("token grant failed", zap.Error(err))
		return "", false
	}

	return v.(string), true
}

// cached returns the memoized token when it has not expired
func (m *TokenManager) cached() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.token == "" {
		return "", false
	}
	if !m.expiresAt.IsZero() && !m.now().Before(m.expiresAt) {
		return "", false
	}
	return m.token, true
}

// fetch performs the client-credentials grant and stores the result
func (m *TokenManager) fetch(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "basic")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(m.cfg.ClientID, m.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := readLimitedBody(resp.Body, maxErrorBody)
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	var expiresAt time.Time
	if tr.ExpiresIn > 0 {
		expiresAt = m.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expirySkew)
	}

	m.mu.Lock()
	m.token = tr.AccessToken
	m.expiresAt = expiresAt
	m.mu.Unlock()

	m.logger.Info("obtained bearer token", zap.Int64("expires_in", tr.ExpiresIn))
	return tr.AccessToken, nil
}
