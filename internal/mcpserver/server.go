// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes manifesttools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wextkit/manifesttools"
)

const serverInstructions = `manifesttools MCP server — validates browser extension documents and answers extension API availability questions.

Tools:
- validate: validate a manifest, static theme, language pack, dictionary, or locale messages document against its schema variant. Version-gated and deprecated manifest properties are checked against the document's own declared manifest_version.
- api_support: resolve availability, deprecation, and version bounds for one namespace.member pair against the shipped API compatibility table (or an override table loaded from disk).`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "manifesttools", Version: manifesttools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a browser extension document against its schema variant. Kinds: manifest (default), manifest-v3, theme, langpack, dictionary, messages. Returns a validity verdict plus diagnostics with JSON pointer paths. Provide the document inline or by file path, not both.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "api_support",
		Description: "Query extension API availability for a namespace.member pair: whether it is usable under a given manifest version, whether it is temporary or deprecated, and its effective min/max version bounds. Uses the shipped compatibility table unless a table file path is given.",
	}, handleAPISupport)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
