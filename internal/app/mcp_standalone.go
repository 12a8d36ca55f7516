package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rorkforge/internal/config"
	mcpserver "rorkforge/internal/mcp"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It opens the session, starts background work, and serves until stdin closes.
func ServeMCP(cfg config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := New(cfg)
	if err := a.Open(ctx); err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	defer a.Close()

	if err := a.StartBackground(ctx); err != nil {
		log.Printf("[MCP] background work disabled: %v", err)
	}

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Session: a.session,
		Studio:  a.studio,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
