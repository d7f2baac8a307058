// Package mcp exposes the discovery and comparison operations as MCP tools
// for AI assistants over stdio.
package mcp

import (
	"fmt"
	"log"
	"os"

	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
	"github.com/madhavthaker/pdp-comp-analysis/internal/config"
	"github.com/madhavthaker/pdp-comp-analysis/internal/llm"
	"github.com/madhavthaker/pdp-comp-analysis/internal/operations"
)

// RunServer runs the MCP server over stdio. Logging goes to stderr so it
// doesn't interfere with the protocol stream.
func RunServer() error {
	log.SetOutput(os.Stderr)
	log.SetPrefix("[PDP-MCP] ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return fmt.Errorf("MCP server mode requires stdin/stdout to be connected (not a terminal)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	structured := llm.NewClient(cfg.OpenRouterKey, cfg.Model)
	search := llm.NewSearchClient(cfg.OpenAIKey, cfg.SearchModel)

	finder := competitor.NewFinder(structured, search, nil)
	analyzer := analysis.NewAnalyzer(structured, nil)
	ops := operations.New(finder, analyzer, nil)

	server := mcp.NewServer(stdio.NewStdioServerTransport())
	if err := RegisterTools(server, ops); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	log.Println("MCP server ready, serving requests...")
	if err := server.Serve(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	// Block forever - the server runs in background goroutines
	select {}
}
