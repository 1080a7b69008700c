// Package mcp exposes the viewer to MCP clients over stdio.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/viewer"
)

// Server wraps an MCP server driving one viewer session. Tool calls are
// serialised so each sees the session settle before it returns.
type Server struct {
	source catalog.Source
	loader *viewer.Loader
	opts   []viewer.Option
	mcp    *server.MCPServer

	mu      sync.Mutex
	surface *viewer.MemorySurface
	ctrl    *viewer.Controller
}

// NewServer creates a new MCP server reporting version to clients. opts
// configure the session controller.
func NewServer(version string, source catalog.Source, loader *viewer.Loader, opts ...viewer.Option) *Server {
	s := &Server{
		source: source,
		loader: loader,
		opts:   opts,
	}

	s.mcp = server.NewMCPServer(
		"docview",
		version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(openDocumentTool, s.handleOpenDocument)
	s.mcp.AddTool(activeDocumentTool, s.handleActiveDocument)
}

// session starts the controller on first use. Callers hold s.mu.
func (s *Server) session(ctx context.Context) (*viewer.Controller, error) {
	if s.ctrl != nil {
		return s.ctrl, nil
	}
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	s.surface = viewer.NewMemorySurface("")
	s.ctrl = viewer.NewController(s.surface, s.loader, s.opts...)
	s.ctrl.Start(ctx, entries)
	s.ctrl.Wait()
	return s.ctrl, nil
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
