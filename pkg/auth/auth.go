// Package auth obtains and caches the bearer credential used for
// outbound platform API calls, via the client-credentials grant.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"hookcord/pkg/bus"
	"hookcord/pkg/logger"
	"hookcord/pkg/state"
)

const tokenCacheKey = "auth:token"

// Config configures the credential manager.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        string
	APIBase      string
}

// Manager exchanges application credentials for a bearer token and
// exposes it as a ready-to-use Authorization header value. The token
// is process-wide state, replaced wholesale on refresh; readers must
// tolerate the not-ready state before the first successful fetch.
type Manager struct {
	log *logger.Logger
	kv  state.KV
	bus bus.Bus

	oauth clientcredentials.Config

	mu            sync.RWMutex
	authorization string
	expiry        time.Time
}

// NewManager creates a credential manager. The token endpoint is
// derived from the configured API base.
func NewManager(log *logger.Logger, cfg *Config, kv state.KV, eventBus bus.Bus) *Manager {
	return &Manager{
		log: log,
		kv:  kv,
		bus: eventBus,
		oauth: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.APIBase + "/oauth2/token",
			Scopes:       []string{cfg.Scope},
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

// Start loads a cached token if one is still valid, otherwise fetches
// a fresh one. Failure to obtain a first token is a startup error.
func (m *Manager) Start(ctx context.Context) error {
	if m.loadCached(ctx) {
		m.log.Info("Using cached credential", zap.Time("expiry", m.expiry))
		return nil
	}

	return m.Refresh(ctx)
}

// Ready reports whether a usable credential is held.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.authorization != "" && (m.expiry.IsZero() || time.Now().Before(m.expiry))
}

// Authorization returns the Authorization header value, or "" when not
// ready.
func (m *Manager) Authorization() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.authorization != "" && !m.expiry.IsZero() && !time.Now().Before(m.expiry) {
		return ""
	}
	return m.authorization
}

// Refresh fetches a new token, replacing the held credential. Failures
// are broadcast as error events and returned to the caller; no retry
// is attempted here.
func (m *Manager) Refresh(ctx context.Context) error {
	token, err := m.oauth.Token(ctx)
	if err != nil {
		err = fmt.Errorf("fetching credential: %w", err)
		m.log.Error("Credential fetch failed", zap.Error(err))
		m.publishError(err)
		return err
	}

	authorization := fmt.Sprintf("%s %s", token.Type(), token.AccessToken)

	m.mu.Lock()
	m.authorization = authorization
	m.expiry = token.Expiry
	m.mu.Unlock()

	m.cache(ctx, token)

	m.log.Info("Credential refreshed", zap.Time("expiry", token.Expiry))
	return nil
}

// loadCached restores a previously fetched token from the state store.
func (m *Manager) loadCached(ctx context.Context) bool {
	cached, exists, err := m.kv.GetMap(ctx, tokenCacheKey)
	if err != nil || !exists {
		return false
	}

	accessToken, _ := cached["access_token"].(string)
	tokenType, _ := cached["token_type"].(string)
	expiryStr, _ := cached["expiry"].(string)
	if accessToken == "" || tokenType == "" {
		return false
	}

	expiry, err := time.Parse(time.RFC3339, expiryStr)
	if err != nil || !time.Now().Before(expiry) {
		return false
	}

	m.mu.Lock()
	m.authorization = fmt.Sprintf("%s %s", tokenType, accessToken)
	m.expiry = expiry
	m.mu.Unlock()

	return true
}

// cache persists the token for reuse across restarts.
func (m *Manager) cache(ctx context.Context, token *oauth2.Token) {
	err := m.kv.Set(ctx, tokenCacheKey, map[string]interface{}{
		"access_token": token.AccessToken,
		"token_type":   token.Type(),
		"expiry":       token.Expiry.Format(time.RFC3339),
	})
	if err != nil {
		m.log.Warn("Failed to cache credential", zap.Error(err))
	}
}

func (m *Manager) publishError(err error) {
	if m.bus == nil {
		return
	}

	evt := &bus.Event{
		ID:        uuid.NewString(),
		Kind:      bus.KindError,
		Timestamp: time.Now(),
		Error:     err.Error(),
	}
	if pubErr := m.bus.Publish(evt); pubErr != nil {
		m.log.Warn("Failed to publish error event", zap.Error(pubErr))
	}
}
