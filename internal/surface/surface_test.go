package surface_test

import (
	"errors"
	"strings"
	"testing"

	"rorkforge/internal/domain"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
	"rorkforge/internal/surface"
)

const previewBase = "https://vercel-preview.example/"

// ─────────────────────────────────────────────────────────────
// Preview consumer
// ─────────────────────────────────────────────────────────────

func TestPreview_ApplyOverwritesStaging(t *testing.T) {
	bus := events.NewBus()
	p := surface.NewPreview("https://main.example/", "https://staging.example/")
	release := p.Mount(bus)
	defer release()

	bus.TriggerApply("A")
	bus.TriggerApply("B")

	if got := p.StagingURL(); got != "B" {
		t.Errorf("expected B, got %q", got)
	}
	if got := p.MainURL(); got != "https://main.example/" {
		t.Errorf("apply must not touch the main target, got %q", got)
	}
}

func TestPreview_ReleaseStopsUpdates(t *testing.T) {
	bus := events.NewBus()
	p := surface.NewPreview("", "initial")
	release := p.Mount(bus)

	bus.TriggerApply("mounted")
	release()
	release()
	bus.TriggerApply("after")

	if got := p.StagingURL(); got != "mounted" {
		t.Errorf("expected mounted, got %q", got)
	}
	if p.State().Mounted {
		t.Error("expected preview to report unmounted")
	}
	if n := bus.SubscriberCount(events.TopicApply); n != 0 {
		t.Errorf("leaked %d subscription(s)", n)
	}
}

func TestPreview_RemountReplacesSubscription(t *testing.T) {
	bus := events.NewBus()
	p := surface.NewPreview("", "")

	stale := p.Mount(bus)
	release := p.Mount(bus)
	defer release()

	if n := bus.SubscriberCount(events.TopicApply); n != 1 {
		t.Fatalf("expected a single subscription, got %d", n)
	}
	stale()
	if !p.State().Mounted {
		t.Error("releasing a replaced mount must not unmount the current one")
	}
	bus.TriggerApply("x")
	if p.StagingURL() != "x" {
		t.Errorf("expected x, got %q", p.StagingURL())
	}
}

func TestPreview_ManyIndependentConsumers(t *testing.T) {
	bus := events.NewBus()
	a := surface.NewPreview("", "a0")
	b := surface.NewPreview("", "b0")
	defer a.Mount(bus)()
	releaseB := b.Mount(bus)

	bus.TriggerApply("one")
	releaseB()
	bus.TriggerApply("two")

	if a.StagingURL() != "two" || b.StagingURL() != "one" {
		t.Errorf("a=%q b=%q", a.StagingURL(), b.StagingURL())
	}
}

func TestStagingFromURL(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"https://app.example/?staging=https%3A%2F%2Fpr-1.example", "https://pr-1.example", true},
		{"https://app.example/preview?x=1&staging=s", "s", true},
		{"https://app.example/", "", false},
		{"", "", false},
		{"%zz", "", false},
	}
	for _, tt := range tests {
		got, ok := surface.StagingFromURL(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("StagingFromURL(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ─────────────────────────────────────────────────────────────
// Shell consumer
// ─────────────────────────────────────────────────────────────

func TestShell_Navigate(t *testing.T) {
	bus := events.NewBus()
	s := surface.NewShell(events.PageStudio)
	defer s.Mount(bus)()

	bus.TriggerNavigate(events.PageTemplates)
	bus.TriggerNavigate(events.PageMarket)

	if s.Active() != events.PageMarket {
		t.Errorf("expected market, got %q", s.Active())
	}
}

func TestShell_InvalidInitialFallsBack(t *testing.T) {
	s := surface.NewShell("nowhere")
	if s.Active() != events.PageVision {
		t.Errorf("expected vision, got %q", s.Active())
	}
}

func TestShell_Readme(t *testing.T) {
	s := surface.NewShell(events.PageVision)
	if s.ReadmeOpen() {
		t.Fatal("readme should start closed")
	}
	s.OpenReadme()
	if !s.State().ReadmeOpen {
		t.Error("expected readme open")
	}
	s.CloseReadme()
	if s.ReadmeOpen() {
		t.Error("expected readme closed")
	}
}

func TestShell_Unmount(t *testing.T) {
	bus := events.NewBus()
	s := surface.NewShell(events.PageVision)
	s.Mount(bus)
	s.Unmount()

	bus.TriggerNavigate(events.PagePublish)
	if s.Active() != events.PageVision {
		t.Errorf("unmounted shell changed to %q", s.Active())
	}
}

// ─────────────────────────────────────────────────────────────
// Studio publisher
// ─────────────────────────────────────────────────────────────

func newStudio(bus *events.Bus, doc domain.StudioDocument) *surface.Studio {
	return surface.NewStudio(
		func() domain.StudioDocument { return doc },
		export.New(export.DefaultOptions()),
		bus,
		previewBase,
	)
}

func TestStudio_OpenInPreviewSyncsSurfaces(t *testing.T) {
	bus := events.NewBus()
	shell := surface.NewShell(events.PageStudio)
	preview := surface.NewPreview("", "")
	defer shell.Mount(bus)()
	defer preview.Mount(bus)()

	studio := newStudio(bus, domain.Seed())
	target := studio.OpenInPreview()

	if target != previewBase+"demo-app" {
		t.Errorf("unexpected target %q", target)
	}
	if preview.StagingURL() != target {
		t.Errorf("preview did not receive apply: %q", preview.StagingURL())
	}
	if shell.Active() != events.PagePreview {
		t.Errorf("shell did not navigate: %q", shell.Active())
	}
}

func TestStudio_ExportsAreRetained(t *testing.T) {
	studio := newStudio(events.NewBus(), domain.Seed())
	if studio.LastText() != "" || studio.LastManifest() != nil {
		t.Fatal("expected no results before exporting")
	}

	text := studio.ExportText()
	if !strings.HasPrefix(text, `App: "Demo App"`) || studio.LastText() != text {
		t.Errorf("unexpected text export %q", text)
	}
	data, err := studio.ExportManifest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(studio.LastManifest()) != string(data) {
		t.Error("manifest not retained")
	}
}

func TestStudio_ManifestErrorKeepsPrevious(t *testing.T) {
	doc := domain.Seed()
	studio := surface.NewStudio(
		func() domain.StudioDocument { return doc },
		export.New(export.DefaultOptions()),
		events.NewBus(),
		previewBase,
	)
	first, err := studio.ExportManifest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc = doc.WithMeta(domain.Meta{Name: "", Theme: domain.ThemeDark})
	if _, err := studio.ExportManifest(); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if string(studio.LastManifest()) != string(first) {
		t.Error("failed export replaced the displayed manifest")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Demo App":        "demo-app",
		"  My   Big App ": "-my-big-app-",
		"CRM":             "crm",
		"tab\tname":       "tab-name",
		"Demo\u00a0App":   "demo-app",
		"a\ufeff\u2028b":  "a-b",
		"wide\u3000gap":   "wide-gap",
		"v\vtab":          "v-tab",
	}
	for in, want := range tests {
		if got := surface.Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStudio_PreviewURLEscapes(t *testing.T) {
	studio := newStudio(events.NewBus(), domain.Seed())
	doc := domain.StudioDocument{Meta: domain.Meta{Name: "R&D / Ops", Theme: domain.ThemeDark}}
	if got := studio.PreviewURL(doc); got != previewBase+"r%26d-%2F-ops" {
		t.Errorf("unexpected url %q", got)
	}

	tests := map[string]string{
		"Rork's App!":   "rork's-app!",
		"Demo\u00a0App": "demo-app",
		"Shop (beta)*":  "shop-(beta)*",
		"under_score.~": "under_score.~",
		"Café":          "caf%C3%A9",
		"a+b=c?d#e":     "a%2Bb%3Dc%3Fd%23e",
	}
	for name, want := range tests {
		doc := domain.StudioDocument{Meta: domain.Meta{Name: name, Theme: domain.ThemeDark}}
		if got := studio.PreviewURL(doc); got != previewBase+want {
			t.Errorf("PreviewURL(%q) = %q, want %q", name, got, previewBase+want)
		}
	}
}
