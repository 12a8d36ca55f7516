package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rorkforge/internal/config"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RORKFORGE_CONFIG", "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(export.DefaultOptions(), cfg.ExportOptions()); diff != "" {
		t.Errorf("export options mismatch (-want +got):\n%s", diff)
	}
	if cfg.Preview.BaseURL != "https://vercel-preview.example/" {
		t.Errorf("unexpected base url %q", cfg.Preview.BaseURL)
	}
	if cfg.Session.Checkpoint != "@every 30s" || cfg.Session.HistoryLimit != 40 {
		t.Errorf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Shell.DefaultPage != string(events.PageVision) {
		t.Errorf("unexpected default page %q", cfg.Shell.DefaultPage)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "rorkforge.yaml")
	body := `
export:
  ext: jsx
preview:
  host_url: "https://app.example/?staging=https://pr-7.example"
shell:
  default_page: studio
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RORKFORGE_CONFIG", path)
	t.Setenv("RORKFORGE_PREVIEW_DEFAULT_URL", "https://fallback.example")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Export.Ext != "jsx" || cfg.Export.Framework != "nextjs" {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}
	if cfg.Shell.DefaultPage != "studio" {
		t.Errorf("unexpected default page %q", cfg.Shell.DefaultPage)
	}
	if got := cfg.InitialStaging(); got != "https://pr-7.example" {
		t.Errorf("staging param should win, got %q", got)
	}

	cfg.Preview.HostURL = ""
	if got := cfg.InitialStaging(); got != "https://fallback.example" {
		t.Errorf("expected env default, got %q", got)
	}
}

func TestLoad_InvalidDefaultPage(t *testing.T) {
	isolate(t)
	t.Setenv("RORKFORGE_SHELL_DEFAULT_PAGE", "lobby")

	if _, err := config.Load(); !errors.Is(err, events.ErrUnknownPageKey) {
		t.Errorf("expected ErrUnknownPageKey, got %v", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("RORKFORGE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := config.Load(); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
