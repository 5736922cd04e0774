package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"hookcord/pkg/bus"
	"hookcord/pkg/logger"
	"hookcord/pkg/state"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: logger.LevelError})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return log
}

func testKV(t *testing.T) state.KV {
	t.Helper()
	kv, err := state.NewFileStore(testLogger(t), &state.FileStoreConfig{
		FilePath: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("Failed to create state store: %v", err)
	}
	return kv
}

func tokenServer(t *testing.T, status int) (*httptest.Server, *[]map[string]string) {
	t.Helper()

	var requests []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/token" {
			http.NotFound(w, r)
			return
		}
		r.ParseForm()
		requests = append(requests, map[string]string{
			"client_id":  r.FormValue("client_id"),
			"grant_type": r.FormValue("grant_type"),
			"scope":      r.FormValue("scope"),
		})

		if status != http.StatusOK {
			http.Error(w, `{"error":"invalid_client"}`, status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-abc",
			"token_type":   "Bearer",
			"expires_in":   604800,
		})
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func TestManagerStart(t *testing.T) {
	srv, requests := tokenServer(t, http.StatusOK)

	m := NewManager(testLogger(t), &Config{
		ClientID:     "client-1",
		ClientSecret: "secret",
		Scope:        "applications.commands.update",
		APIBase:      srv.URL,
	}, testKV(t), nil)

	if m.Ready() {
		t.Error("manager should not be ready before Start")
	}

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !m.Ready() {
		t.Error("manager should be ready after Start")
	}
	if got := m.Authorization(); got != "Bearer tok-abc" {
		t.Errorf("Authorization() = %q", got)
	}

	if len(*requests) != 1 {
		t.Fatalf("expected 1 token request, got %d", len(*requests))
	}
	req := (*requests)[0]
	if req["grant_type"] != "client_credentials" {
		t.Errorf("grant_type = %q", req["grant_type"])
	}
	if req["client_id"] != "client-1" {
		t.Errorf("client_id = %q", req["client_id"])
	}
	if req["scope"] != "applications.commands.update" {
		t.Errorf("scope = %q", req["scope"])
	}
}

func TestManagerStartUsesCache(t *testing.T) {
	srv, requests := tokenServer(t, http.StatusOK)
	kv := testKV(t)

	kv.Set(context.Background(), tokenCacheKey, map[string]interface{}{
		"access_token": "cached-tok",
		"token_type":   "Bearer",
		"expiry":       time.Now().Add(time.Hour).Format(time.RFC3339),
	})

	m := NewManager(testLogger(t), &Config{
		ClientID: "client-1", ClientSecret: "secret", APIBase: srv.URL,
	}, kv, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := m.Authorization(); got != "Bearer cached-tok" {
		t.Errorf("Authorization() = %q", got)
	}
	if len(*requests) != 0 {
		t.Errorf("expected no token requests when cache is valid, got %d", len(*requests))
	}
}

func TestManagerIgnoresExpiredCache(t *testing.T) {
	srv, requests := tokenServer(t, http.StatusOK)
	kv := testKV(t)

	kv.Set(context.Background(), tokenCacheKey, map[string]interface{}{
		"access_token": "stale-tok",
		"token_type":   "Bearer",
		"expiry":       time.Now().Add(-time.Hour).Format(time.RFC3339),
	})

	m := NewManager(testLogger(t), &Config{
		ClientID: "client-1", ClientSecret: "secret", APIBase: srv.URL,
	}, kv, nil)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if got := m.Authorization(); got != "Bearer tok-abc" {
		t.Errorf("Authorization() = %q, want fresh token", got)
	}
	if len(*requests) != 1 {
		t.Errorf("expected 1 token request, got %d", len(*requests))
	}
}

func TestManagerFetchFailure(t *testing.T) {
	srv, _ := tokenServer(t, http.StatusUnauthorized)

	log := testLogger(t)
	eventBus := bus.NewLocalBus(log, 10)
	eventBus.Start()
	defer eventBus.Stop()

	errors := make(chan *bus.Event, 1)
	eventBus.Subscribe(bus.KindError, func(ctx context.Context, evt *bus.Event) error {
		errors <- evt
		return nil
	})

	m := NewManager(log, &Config{
		ClientID: "client-1", ClientSecret: "wrong", APIBase: srv.URL,
	}, testKV(t), eventBus)

	if err := m.Start(context.Background()); err == nil {
		t.Fatal("expected error from failed credential fetch")
	}
	if m.Ready() {
		t.Error("manager should not be ready after failed fetch")
	}

	select {
	case evt := <-errors:
		if evt.Error == "" {
			t.Error("error event should carry a description")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an error event on the bus")
	}
}
