package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// Checkpointer — folds uncommitted edits into history on a schedule
// ─────────────────────────────────────────────────────────────

type Checkpointer struct {
	session *Session
	spec    string

	mu    sync.Mutex
	sched *cron.Cron
}

// NewCheckpointer creates a Checkpointer for a cron spec such as
// "@every 30s" or "*/5 * * * *". An empty spec disables it.
func NewCheckpointer(session *Session, spec string) *Checkpointer {
	return &Checkpointer{session: session, spec: spec}
}

// Start validates the spec and starts the scheduler.
func (c *Checkpointer) Start(ctx context.Context) error {
	if c.spec == "" {
		log.Printf("checkpoint: disabled")
		return nil
	}

	sched := cron.New()
	_, err := sched.AddFunc(c.spec, func() {
		saved, err := c.session.Checkpoint(ctx)
		if err != nil {
			log.Printf("checkpoint: failed: %v", err)
			return
		}
		if saved {
			log.Printf("checkpoint: recorded snapshot")
		}
	})
	if err != nil {
		return fmt.Errorf("checkpoint: invalid schedule %q: %w", c.spec, err)
	}

	c.mu.Lock()
	c.sched = sched
	c.mu.Unlock()
	sched.Start()
	log.Printf("checkpoint: scheduled %q", c.spec)
	return nil
}

// Stop halts the scheduler and waits for a running checkpoint to finish.
func (c *Checkpointer) Stop() {
	c.mu.Lock()
	sched := c.sched
	c.sched = nil
	c.mu.Unlock()
	if sched != nil {
		<-sched.Stop().Done()
	}
}
