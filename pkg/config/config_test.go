package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPublicKey = "d004e0cb57d6f03a60d4e22ad06b43e3972340cfc149dbd79098071b1ae6bec1"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gateway.Port != 18600 {
		t.Errorf("default gateway port = %d, want 18600", cfg.Gateway.Port)
	}
	if cfg.Gateway.AckTimeout != 3 {
		t.Errorf("default ack timeout = %d, want 3", cfg.Gateway.AckTimeout)
	}
	if cfg.App.Scope != "applications.commands.update" {
		t.Errorf("default scope = %q", cfg.App.Scope)
	}
	if cfg.Bus.Type != "local" {
		t.Errorf("default bus type = %q, want local", cfg.Bus.Type)
	}
}

func TestLoadAutoCreates(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg := DefaultConfig()
	cfg.Gateway.PublicKey = testPublicKey
	cfg.Gateway.Port = 9999
	cfg.App.ClientID = "123456"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Gateway.Port != 9999 {
		t.Errorf("loaded port = %d, want 9999", loaded.Gateway.Port)
	}
	if loaded.Gateway.PublicKey != testPublicKey {
		t.Errorf("loaded public key = %q", loaded.Gateway.PublicKey)
	}
	if loaded.App.ClientID != "123456" {
		t.Errorf("loaded client id = %q", loaded.App.ClientID)
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Gateway.PublicKey = testPublicKey

	if err := ValidateConfig(valid); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "missing public key",
			mutate: func(c *Config) { c.Gateway.PublicKey = "" },
			field:  "gateway.public_key",
		},
		{
			name:   "non-hex public key",
			mutate: func(c *Config) { c.Gateway.PublicKey = "zzzz" },
			field:  "gateway.public_key",
		},
		{
			name:   "short public key",
			mutate: func(c *Config) { c.Gateway.PublicKey = "abcd" },
			field:  "gateway.public_key",
		},
		{
			name:   "bad port",
			mutate: func(c *Config) { c.Gateway.Port = 0 },
			field:  "gateway.port",
		},
		{
			name:   "credentials not paired",
			mutate: func(c *Config) { c.App.ClientID = "123" },
			field:  "app.client_id",
		},
		{
			name:   "unknown bus type",
			mutate: func(c *Config) { c.Bus.Type = "kafka" },
			field:  "bus.type",
		},
		{
			name:   "redis bus without addr",
			mutate: func(c *Config) { c.Bus.Type = "redis"; c.Redis.Addr = "" },
			field:  "redis.addr",
		},
		{
			name:   "unknown state backend",
			mutate: func(c *Config) { c.State.Backend = "s3" },
			field:  "state.backend",
		},
		{
			name:   "zero ack timeout",
			mutate: func(c *Config) { c.Gateway.AckTimeout = 0 },
			field:  "gateway.ack_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Gateway.PublicKey = testPublicKey
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", err.Error(), tt.field)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := expandPath("~/x"); got != home+"/x" {
		t.Errorf("expandPath(~/x) = %q", got)
	}
	if got := expandPath("/abs"); got != "/abs" {
		t.Errorf("expandPath(/abs) = %q", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(empty) = %q", got)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Gateway.PublicKey = testPublicKey
	cfg.Gateway.Port = 19000
	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile error = %v", err)
	}

	loader := NewLoader()
	loaded, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	watcher := NewWatcher(loader, loaded)

	changed := make(chan *Config, 1)
	watcher.AddHandler(func(c *Config) error {
		select {
		case changed <- c:
		default:
		}
		return nil
	})

	if err := watcher.Start(); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err == nil {
		t.Error("expected second Start to fail")
	}

	cfg.Gateway.Port = 19100
	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile error = %v", err)
	}

	select {
	case newCfg := <-changed:
		if newCfg.Gateway.Port != 19100 {
			t.Errorf("reloaded port = %d, want 19100", newCfg.Gateway.Port)
		}
		if watcher.GetConfig().Gateway.Port != 19100 {
			t.Errorf("GetConfig() not updated after reload")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
