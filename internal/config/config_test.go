package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Setenv("EMAIL", "")
	t.Setenv("PASSWORD", "")
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:8080" || !reflect.DeepEqual(cfg.Years, []int{2025, 2026}) {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perms = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	t.Setenv("EMAIL", "")
	t.Setenv("PASSWORD", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("listen: \":9000\"\nyears: [2026]\nadmin:\n  base_url: https://admin.example.com\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":9000" || !reflect.DeepEqual(cfg.Years, []int{2026}) {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.RefreshCron != "0 */6 * * *" || cfg.DataDir != "data" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Admin.Enabled() {
		t.Error("admin without credentials should be disabled")
	}
}

func TestEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("admin:\n  base_url: https://admin.example.com\n  email: file@example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("EMAIL=dotenv@example.com\nPASSWORD=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EMAIL", "")
	t.Setenv("PASSWORD", "from-env")

	cfg, err := Load(path, envPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Admin.Email != "dotenv@example.com" {
		t.Errorf("email = %q, want value from .env", cfg.Admin.Email)
	}
	if cfg.Admin.Password != "from-env" {
		t.Errorf("password = %q, want value from environment", cfg.Admin.Password)
	}
	if !cfg.Admin.Enabled() {
		t.Error("admin should be enabled")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.ICS = []FeedConfig{{ID: "studio", URL: "https://example.com/cal.ics"}}
	cfg.BasicAuth = &BasicAuthConfig{Username: "admin", Password: "pw"}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := loadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}
