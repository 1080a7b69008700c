package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docview/internal/catalog"
	"github.com/ziadkadry99/docview/internal/fetch"
	"github.com/ziadkadry99/docview/internal/render"
	"github.com/ziadkadry99/docview/internal/viewer"
)

type failingSource struct{}

func (failingSource) Entries(context.Context) ([]catalog.Entry, error) {
	return nil, errors.New("manifest unavailable")
}

func newTestServer(opts ...viewer.Option) *Server {
	fsys := fstest.MapFS{
		"README.md":         {Data: []byte("# Welcome\n")},
		"kubernetes-pod.md": {Data: []byte("# Pods\n")},
	}
	source := catalog.NewStaticSource([]string{"kubernetes-pod.md", "README.md", "missing.md", "diagram.svg"})
	loader := viewer.NewLoader(fetch.NewFSFetcher(fsys), render.NewMarkdown(render.Options{}), nil)
	return NewServer("test", source, loader, opts...)
}

func resultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_documents", listDocumentsTool, "list_documents"},
		{"open_document", openDocumentTool, "open_document"},
		{"active_document", activeDocumentTool, "active_document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestServer()
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.ctrl != nil {
		t.Error("session should start on first tool call")
	}
}

func TestServerReportsVersion(t *testing.T) {
	srv := NewServer("1.2.3", catalog.NewStaticSource(nil), nil)

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{` +
		`"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	resp := srv.mcp.HandleMessage(context.Background(), json.RawMessage(initialize))

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	if !strings.Contains(string(data), `"serverInfo":{"name":"docview","version":"1.2.3"}`) {
		t.Errorf("initialize response = %s", data)
	}
}

func TestHandleListDocuments(t *testing.T) {
	srv := newTestServer()
	result := call(t, srv.handleListDocuments, nil)
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(result))
	}

	want := "- Readme: README.md (active)\n" +
		"- Kubernetes Pod: kubernetes-pod.md\n" +
		"- Missing: missing.md\n"
	if got := resultText(result); got != want {
		t.Errorf("list = %q, want %q", got, want)
	}
}

func TestHandleOpenDocument(t *testing.T) {
	srv := newTestServer()

	t.Run("renders the document", func(t *testing.T) {
		result := call(t, srv.handleOpenDocument, map[string]any{"link": "kubernetes-pod.md"})
		if result.IsError {
			t.Fatalf("unexpected tool error: %s", resultText(result))
		}
		if got := resultText(result); !strings.Contains(got, `<h1 id="pods">Pods</h1>`) {
			t.Errorf("content = %q", got)
		}
		if n := srv.surface.ActiveCount(); n != 1 {
			t.Errorf("active markers = %d, want 1", n)
		}
	})

	t.Run("load failure", func(t *testing.T) {
		result := call(t, srv.handleOpenDocument, map[string]any{"link": "missing.md"})
		if !result.IsError {
			t.Fatal("expected tool error for missing document")
		}
		if got := resultText(result); got != "<p>Error loading content: HTTP error! status: 404</p>" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		result := call(t, srv.handleOpenDocument, map[string]any{"link": "diagram.svg"})
		if !result.IsError {
			t.Error("expected tool error for unlisted link")
		}
		active, _ := srv.ctrl.Active()
		if active.Link != "missing.md" {
			t.Errorf("active = %q, unknown link must not change it", active.Link)
		}
	})

	t.Run("missing link", func(t *testing.T) {
		result := call(t, srv.handleOpenDocument, map[string]any{})
		if !result.IsError {
			t.Error("expected error for missing link")
		}
	})
}

func TestHandleActiveDocument(t *testing.T) {
	srv := newTestServer()
	result := call(t, srv.handleActiveDocument, nil)
	got := resultText(result)
	if !strings.HasPrefix(got, "Readme (README.md)\n\n") || !strings.Contains(got, "Welcome") {
		t.Errorf("active = %q", got)
	}

	call(t, srv.handleOpenDocument, map[string]any{"link": "kubernetes-pod.md"})
	got = resultText(call(t, srv.handleActiveDocument, nil))
	if !strings.HasPrefix(got, "Kubernetes Pod (kubernetes-pod.md)") {
		t.Errorf("active = %q", got)
	}
}

func TestHandleActiveDocumentNone(t *testing.T) {
	srv := newTestServer(viewer.WithDefaultLink(""))
	if got := resultText(call(t, srv.handleActiveDocument, nil)); got != "No document is active." {
		t.Errorf("active = %q", got)
	}
}

func TestCatalogFailure(t *testing.T) {
	loader := viewer.NewLoader(fetch.NewFSFetcher(fstest.MapFS{}), render.NewMarkdown(render.Options{}), nil)
	srv := NewServer("test", failingSource{}, loader)

	result := call(t, srv.handleListDocuments, nil)
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if got := resultText(result); got != "loading catalog: manifest unavailable" {
		t.Errorf("error = %q", got)
	}
}
