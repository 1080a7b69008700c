package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docview/internal/viewer"
)

// handleListDocuments lists the navigation as "title: link" lines.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items := ctrl.Items()
	if len(items) == 0 {
		return mcp.NewToolResultText("No documents found."), nil
	}
	active, _ := ctrl.Active()

	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %s", it.Title, it.Link)
		if it.ID == active.ID {
			b.WriteString(" (active)")
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleOpenDocument selects a document and returns the content region once
// its load has settled.
func (s *Server) handleOpenDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	link, err := request.RequireString("link")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: link"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := ctrl.Select(ctx, link); err != nil {
		if errors.Is(err, viewer.ErrUnknownItem) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown document %q. Use list_documents to see available links.", link)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctrl.Wait()

	content := s.surface.Content()
	if strings.HasPrefix(content, "<p>"+viewer.ErrorPrefix) {
		return mcp.NewToolResultError(content), nil
	}
	return mcp.NewToolResultText(content), nil
}

// handleActiveDocument reports the active item and the content region.
func (s *Server) handleActiveDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, err := s.session(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	active, ok := ctrl.Active()
	if !ok {
		return mcp.NewToolResultText("No document is active."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)\n\n%s", active.Title, active.Link, s.surface.Content())), nil
}
