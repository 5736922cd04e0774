package gateway

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hookcord/pkg/bus"
	"hookcord/pkg/config"
	"hookcord/pkg/interaction"
	"hookcord/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: logger.LevelError})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestServer(t *testing.T, ackTimeout int) (*httptest.Server, bus.Bus, ed25519.PrivateKey) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	log := testLogger(t)
	eventBus := bus.NewLocalBus(log, 10)
	if err := eventBus.Start(); err != nil {
		t.Fatalf("failed to start bus: %v", err)
	}
	t.Cleanup(func() { eventBus.Stop() })

	cfg := config.DefaultConfig()
	cfg.Gateway.PublicKey = hex.EncodeToString(pub)
	cfg.Gateway.AckTimeout = ackTimeout

	srv, err := NewServer(cfg, log, eventBus, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, eventBus, priv
}

func signedRequest(t *testing.T, url string, priv ed25519.PrivateKey, body string) *http.Request {
	t.Helper()

	timestamp := "1700000000"
	sig := ed25519.Sign(priv, append([]byte(timestamp), []byte(body)...))

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerTimestamp, timestamp)
	req.Header.Set(headerSignature, hex.EncodeToString(sig))
	return req
}

func TestHandleInteractionRejectsBadSignature(t *testing.T) {
	ts, _, _ := newTestServer(t, 1)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/interactions", bytes.NewReader([]byte(`{"type":1}`)))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set(headerTimestamp, "1700000000")
	req.Header.Set(headerSignature, "00ff")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "invalid request signature" {
		t.Errorf("unexpected body: %q", string(body))
	}
}

func TestHandleInteractionPing(t *testing.T) {
	ts, _, priv := newTestServer(t, 1)

	req := signedRequest(t, ts.URL+"/interactions", priv, `{"type":1,"id":"ping-1"}`)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	var out map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["type"] != 1 {
		t.Errorf("expected pong type 1, got %d", out["type"])
	}
}

func TestHandleInteractionCommandDeferred(t *testing.T) {
	ts, eventBus, priv := newTestServer(t, 2)

	received := make(chan *bus.Event, 1)
	eventBus.Subscribe(bus.KindCommand, func(ctx context.Context, evt *bus.Event) error {
		cmd, ok := evt.Interaction.(*interaction.CommandInteraction)
		if !ok {
			t.Errorf("expected *CommandInteraction, got %T", evt.Interaction)
			return nil
		}
		if err := cmd.Defer(); err != nil {
			t.Errorf("defer failed: %v", err)
		}
		received <- evt
		return nil
	})

	payload := `{
		"type": 2,
		"id": "int-1",
		"token": "tok-1",
		"application_id": "app-1",
		"data": {"id": "cmd-1", "name": "greet", "type": 1}
	}`
	req := signedRequest(t, ts.URL+"/interactions", priv, payload)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	var out map[string]int
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["type"] != 5 {
		t.Errorf("expected deferred response type 5, got %d", out["type"])
	}

	select {
	case evt := <-received:
		if evt.Kind != bus.KindCommand {
			t.Errorf("expected kind %q, got %q", bus.KindCommand, evt.Kind)
		}
		if len(evt.Payload) == 0 {
			t.Error("expected raw payload on event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bus event")
	}
}

func TestHandleInteractionAckTimeout(t *testing.T) {
	ts, _, priv := newTestServer(t, 1)

	payload := `{
		"type": 2,
		"id": "int-slow",
		"token": "tok-1",
		"data": {"id": "cmd-1", "name": "slow", "type": 1}
	}`
	req := signedRequest(t, ts.URL+"/interactions", priv, payload)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("expected request held for the acknowledgement window, returned after %v", elapsed)
	}
}

func TestHandleInteractionLateDeferLosesToTimeout(t *testing.T) {
	ts, eventBus, priv := newTestServer(t, 1)

	deferErr := make(chan error, 1)
	eventBus.Subscribe(bus.KindCommand, func(ctx context.Context, evt *bus.Event) error {
		cmd := evt.Interaction.(*interaction.CommandInteraction)
		// Miss the acknowledgement window, then try to reply anyway.
		time.Sleep(1500 * time.Millisecond)
		deferErr <- cmd.Defer()
		return nil
	})

	payload := `{
		"type": 2,
		"id": "int-late",
		"token": "tok-1",
		"data": {"id": "cmd-1", "name": "late", "type": 1}
	}`
	req := signedRequest(t, ts.URL+"/interactions", priv, payload)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["error"] != "interaction not acknowledged" {
		t.Errorf("unexpected error body %q", out["error"])
	}

	select {
	case err := <-deferErr:
		if !errors.Is(err, interaction.ErrAlreadyReplied) {
			t.Errorf("late Defer() error = %v, want ErrAlreadyReplied", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the late defer attempt")
	}
}

func TestHandleInteractionDropsUnmapped(t *testing.T) {
	ts, _, priv := newTestServer(t, 1)

	// Select menu components are received but not dispatched.
	payload := `{
		"type": 3,
		"id": "int-menu",
		"token": "tok-1",
		"data": {"custom_id": "pick", "component_type": 3}
	}`
	req := signedRequest(t, ts.URL+"/interactions", priv, payload)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", resp.StatusCode)
	}
}

func TestHandleInteractionMalformedBody(t *testing.T) {
	ts, _, priv := newTestServer(t, 1)

	req := signedRequest(t, ts.URL+"/interactions", priv, `{"type":`)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestHealthAndStatus(t *testing.T) {
	ts, _, _ := newTestServer(t, 1)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected health status 200, got %d", resp.StatusCode)
	}

	resp2, err := http.Get(ts.URL + "/api/v1/status")
	if err != nil {
		t.Fatalf("status request failed: %v", err)
	}
	defer resp2.Body.Close()

	var status map[string]interface{}
	if err := json.NewDecoder(resp2.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status["version"] == "" {
		t.Error("expected version in status")
	}
	if ready, ok := status["auth_ready"].(bool); !ok || ready {
		t.Errorf("expected auth_ready false, got %v", status["auth_ready"])
	}
}
