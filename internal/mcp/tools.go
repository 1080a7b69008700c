package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents in the navigation, marking the active one."),
)

// openDocumentTool defines the open_document MCP tool.
var openDocumentTool = mcp.NewTool("open_document",
	mcp.WithDescription("Make a document active and return its rendered HTML."),
	mcp.WithString("link",
		mcp.Required(),
		mcp.Description("Document link as listed by list_documents, e.g. kubernetes-pod.md"),
	),
)

// activeDocumentTool defines the active_document MCP tool.
var activeDocumentTool = mcp.NewTool("active_document",
	mcp.WithDescription("Return the active document and the current content region."),
)
