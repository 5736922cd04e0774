package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{
		Level:      LevelDebug,
		OutputPath: filepath.Join(tmpDir, "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info("test message")
	log.Sync()

	if _, err := os.Stat(cfg.OutputPath); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestNewConsoleOnly(t *testing.T) {
	log, err := New(&Config{Level: LevelError})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Error("console only")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   Level
		wantErr bool
	}{
		{LevelDebug, false},
		{LevelInfo, false},
		{LevelWarn, false},
		{LevelError, false},
		{LevelFatal, false},
		{"", false},
		{"verbose", true},
	}

	for _, tt := range tests {
		if _, err := parseLevel(tt.level); (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestWithFields(t *testing.T) {
	log, err := New(&Config{Level: LevelError})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	child := log.WithFields()
	if child == nil {
		t.Fatal("WithFields returned nil")
	}
}
