// ABOUTME: Tests for YAML configuration loading and derived settings
// ABOUTME: Covers default fallbacks and backend selection

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/skim/internal/storage"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetBackend(); got != "file" {
		t.Errorf("GetBackend = %q, want file", got)
	}
	if got := cfg.Retention().WindowDays(); got != 30 {
		t.Errorf("retention window = %d, want 30", got)
	}
	if got := cfg.RefreshInterval(); got != 30*time.Minute {
		t.Errorf("RefreshInterval = %v, want 30m", got)
	}
	if got := cfg.FetchTimeout(); got != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", got)
	}
	if got := cfg.GetDataDir(); !strings.HasSuffix(got, "skim") {
		t.Errorf("GetDataDir = %q, want a skim data directory", got)
	}
}

func TestLoadExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend: sqlite
data_dir: /tmp/skim-test
retention_days: 14
refresh_interval_minutes: 5
fetch_timeout_seconds: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != "sqlite" {
		t.Errorf("backend = %q", cfg.GetBackend())
	}
	if cfg.GetDataDir() != "/tmp/skim-test" {
		t.Errorf("data dir = %q", cfg.GetDataDir())
	}
	if cfg.Retention().WindowDays() != 14 {
		t.Errorf("retention = %d", cfg.Retention().WindowDays())
	}
	if cfg.RefreshInterval() != 5*time.Minute {
		t.Errorf("interval = %v", cfg.RefreshInterval())
	}
	if cfg.FetchTimeout() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.FetchTimeout())
	}
}

func TestLoadMissingExplicitFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [unclosed"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestOpenStorage(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		cfg := &Config{Backend: "file", DataDir: t.TempDir()}
		store, err := cfg.OpenStorage()
		if err != nil {
			t.Fatalf("OpenStorage failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*storage.FileStore); !ok {
			t.Errorf("store = %T, want *storage.FileStore", store)
		}
	})

	t.Run("sqlite backend", func(t *testing.T) {
		cfg := &Config{Backend: "sqlite", DataDir: t.TempDir()}
		store, err := cfg.OpenStorage()
		if err != nil {
			t.Fatalf("OpenStorage failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*storage.SQLiteStore); !ok {
			t.Errorf("store = %T, want *storage.SQLiteStore", store)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &Config{Backend: "redis"}
		if _, err := cfg.OpenStorage(); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
