package surface

import (
	"sync"

	"rorkforge/internal/events"
)

type ShellState struct {
	Active     events.PageKey `json:"active"`
	ReadmeOpen bool           `json:"readmeOpen"`
	Mounted    bool           `json:"mounted"`
}

// Shell is the editor-side consumer that owns the active section. It also
// owns the README modal state, which any region toggles through the shell
// instead of a global trigger.
type Shell struct {
	mu         sync.Mutex
	active     events.PageKey
	readmeOpen bool
	sub        *events.Subscription
}

// NewShell creates a Shell showing initial. An invalid key falls back to
// the first section.
func NewShell(initial events.PageKey) *Shell {
	if !initial.Valid() {
		initial = events.PageKeys[0]
	}
	return &Shell{active: initial}
}

// Mount subscribes the shell to navigate events and returns the release
// function.
func (s *Shell) Mount(bus *events.Bus) (release func()) {
	sub := bus.OnNavigate(func(ev events.NavigatePayload) {
		s.mu.Lock()
		s.active = ev.Page
		s.mu.Unlock()
	})

	s.mu.Lock()
	prev := s.sub
	s.sub = sub
	s.mu.Unlock()
	prev.Unsubscribe()

	return func() { s.release(sub) }
}

func (s *Shell) Unmount() {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	s.release(sub)
}

func (s *Shell) release(sub *events.Subscription) {
	sub.Unsubscribe()
	s.mu.Lock()
	if s.sub == sub {
		s.sub = nil
	}
	s.mu.Unlock()
}

func (s *Shell) Active() events.PageKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Shell) OpenReadme() {
	s.mu.Lock()
	s.readmeOpen = true
	s.mu.Unlock()
}

func (s *Shell) CloseReadme() {
	s.mu.Lock()
	s.readmeOpen = false
	s.mu.Unlock()
}

func (s *Shell) ReadmeOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readmeOpen
}

func (s *Shell) State() ShellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ShellState{Active: s.active, ReadmeOpen: s.readmeOpen, Mounted: s.sub != nil}
}
