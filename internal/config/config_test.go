package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setZoomEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ZOOM_ACCOUNT_ID", "acct")
	t.Setenv("ZOOM_CLIENT_ID", "client")
	t.Setenv("ZOOM_CLIENT_SECRET", "secret")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	setZoomEnv(t)

	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("expected exists=false for missing file")
	}
	if path == "" {
		t.Error("expected resolved path")
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
	if cfg.Zoom.BaseURL != "https://api.zoom.us/v2" {
		t.Errorf("Zoom.BaseURL = %q", cfg.Zoom.BaseURL)
	}
	if cfg.Zoom.AccountID != "acct" {
		t.Errorf("env fallback not applied: %q", cfg.Zoom.AccountID)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	setZoomEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"

[zoom]
base_url = "https://zoom.example.com/v2/"

[report]
meeting_ids = ["123", " 456 ", ""]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Zoom.BaseURL != "https://zoom.example.com/v2" {
		t.Errorf("trailing slash not trimmed: %q", cfg.Zoom.BaseURL)
	}
	want := []string{"123", "456"}
	if len(cfg.Report.MeetingIDs) != len(want) {
		t.Fatalf("MeetingIDs = %v, want %v", cfg.Report.MeetingIDs, want)
	}
	for i, id := range want {
		if cfg.Report.MeetingIDs[i] != id {
			t.Errorf("MeetingIDs[%d] = %q, want %q", i, cfg.Report.MeetingIDs[i], id)
		}
	}
	if !strings.HasSuffix(cfg.DatabasePath(), "rollcall.db") {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath())
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	t.Setenv("ZOOM_ACCOUNT_ID", "")
	t.Setenv("ZOOM_CLIENT_ID", "")
	t.Setenv("ZOOM_CLIENT_SECRET", "")

	_, _, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected credential validation error")
	}
	if !strings.Contains(err.Error(), "zoom credentials") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateGoogleRequiresFields(t *testing.T) {
	cfg := Default()
	cfg.Zoom.AccountID = "a"
	cfg.Zoom.ClientID = "b"
	cfg.Zoom.ClientSecret = "c"
	cfg.Google.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for google section")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[zoom]") {
		t.Error("sample missing zoom section")
	}
}
