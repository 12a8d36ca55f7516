package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"rorkforge/internal/config"
	"rorkforge/internal/domain"
	"rorkforge/internal/events"
	"rorkforge/internal/export"
	"rorkforge/internal/service"
	"rorkforge/internal/storage"
	"rorkforge/internal/surface"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	cfg config.Config

	db       *storage.DB
	bus      *events.Bus
	exporter *export.Exporter
	session  *service.Session
	studio   *surface.Studio
	preview  *surface.Preview
	shell    *surface.Shell

	watcher     *service.DocumentWatcher
	checkpoints *service.Checkpointer

	mu       sync.Mutex
	releases []func()
}

// New creates a new App.
func New(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Open builds the core: session history, bus, session and the mounted
// surfaces. Every run mode calls it before anything else.
func (a *App) Open(ctx context.Context) error {
	doc := domain.Seed()
	if path := a.cfg.Session.Document; path != "" {
		loaded, err := service.LoadDocumentFile(path)
		if err != nil {
			return err
		}
		doc = loaded
	}

	db, err := storage.New()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	a.db = db
	a.bus = events.NewBus()
	a.exporter = export.New(a.cfg.ExportOptions())
	a.session = service.NewSession(storage.NewHistoryStore(db, a.cfg.Session.HistoryLimit), a.exporter, a.bus)
	a.studio = surface.NewStudio(a.session.Document, a.exporter, a.bus, a.cfg.Preview.BaseURL)
	a.preview = surface.NewPreview(a.cfg.Preview.MainURL, a.cfg.InitialStaging())
	a.shell = surface.NewShell(events.PageKey(a.cfg.Shell.DefaultPage))

	a.track(a.preview.Mount(a.bus))
	a.track(a.shell.Mount(a.bus))

	if err := a.session.Start(ctx, doc); err != nil {
		a.Close()
		return err
	}
	return nil
}

// StartBackground starts the document watcher (when enabled) and the
// checkpoint schedule.
func (a *App) StartBackground(ctx context.Context) error {
	if a.cfg.Session.Watch && a.cfg.Session.Document != "" {
		a.watcher = service.NewDocumentWatcher(a.cfg.Session.Document, a.session, service.DefaultDebounce)
		if err := a.watcher.Start(ctx); err != nil {
			return err
		}
	}
	a.checkpoints = service.NewCheckpointer(a.session, a.cfg.Session.Checkpoint)
	return a.checkpoints.Start(ctx)
}

// Close stops background work, unmounts the surfaces and releases storage.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.checkpoints != nil {
		a.checkpoints.Stop()
	}

	a.mu.Lock()
	releases := a.releases
	a.releases = nil
	a.mu.Unlock()
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}

	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) track(release func()) {
	a.mu.Lock()
	a.releases = append(a.releases, release)
	a.mu.Unlock()
}

// ── Wails lifecycle ────────────────────────────────────────

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	if err := a.Open(ctx); err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open session: %v", err)
		return
	}
	a.track(a.Bridge(func(topic string, data any) {
		wailsRuntime.EventsEmit(ctx, topic, data)
	}))
	if err := a.StartBackground(ctx); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to start background work: %v", err)
	}
	log.Printf("[app] started with %q", a.session.Document().Meta.Name)
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	a.Close()
}

// Bridge forwards the channel topics and document changes to emit, which
// the desktop host points at the frontend. It returns the release function.
func (a *App) Bridge(emit func(topic string, data any)) (release func()) {
	topics := []string{events.TopicApply, events.TopicNavigate, service.TopicDocumentChanged}
	subs := make([]*events.Subscription, len(topics))
	for i, topic := range topics {
		subs[i] = a.bus.Subscribe(topic, func(ev events.Event) {
			emit(ev.Topic, ev.Data)
		})
	}
	return func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}
}

// Session exposes the editing session to the other run modes.
func (a *App) Session() *service.Session { return a.session }

func (a *App) Studio() *surface.Studio { return a.studio }
