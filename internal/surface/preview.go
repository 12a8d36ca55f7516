// Package surface holds the view state of the independent UI regions. Each
// consumer subscribes to the event bus on Mount and keeps its own copy of
// the shared values; consumers never call each other.
package surface

import (
	"net/url"
	"sync"

	"rorkforge/internal/events"
)

// PreviewState is the serializable view of a Preview.
type PreviewState struct {
	MainURL    string `json:"mainUrl"`
	StagingURL string `json:"stagingUrl"`
	Mounted    bool   `json:"mounted"`
}

// Preview is the preview-side consumer. It shows a main target and a
// staging target; apply events overwrite the staging target.
type Preview struct {
	mu      sync.Mutex
	mainURL string
	staging string
	sub     *events.Subscription
}

// NewPreview creates a Preview whose staging target starts at staging.
func NewPreview(mainURL, staging string) *Preview {
	return &Preview{mainURL: mainURL, staging: staging}
}

// Mount subscribes the preview to apply events and returns the release
// function. Callers should defer it so the handler is dropped on every exit
// path. Mounting again releases the previous subscription first.
func (p *Preview) Mount(bus *events.Bus) (release func()) {
	sub := bus.OnApply(func(ev events.ApplyPayload) {
		p.mu.Lock()
		p.staging = ev.URL
		p.mu.Unlock()
	})

	p.mu.Lock()
	prev := p.sub
	p.sub = sub
	p.mu.Unlock()
	prev.Unsubscribe()

	return func() { p.release(sub) }
}

// Unmount releases the current subscription, if any.
func (p *Preview) Unmount() {
	p.mu.Lock()
	sub := p.sub
	p.mu.Unlock()
	p.release(sub)
}

func (p *Preview) release(sub *events.Subscription) {
	sub.Unsubscribe()
	p.mu.Lock()
	if p.sub == sub {
		p.sub = nil
	}
	p.mu.Unlock()
}

func (p *Preview) StagingURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.staging
}

func (p *Preview) MainURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mainURL
}

func (p *Preview) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PreviewState{MainURL: p.mainURL, StagingURL: p.staging, Mounted: p.sub != nil}
}

// StagingFromURL extracts the staging query parameter from the address of
// the hosting page. It is read once at startup to seed the preview.
func StagingFromURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	v := u.Query().Get("staging")
	return v, v != ""
}
