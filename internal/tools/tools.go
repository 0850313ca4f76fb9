// Package tools exposes one MCP tool per logical gnomAD query. Each tool
// validates its parameter shape - required fields, mutually exclusive
// identifiers, dataset/build restrictions - before anything touches the
// network; a validation failure short-circuits with a tool error result
// and never reaches the dispatcher.
package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/genelab/gnomad-mcp/internal/dispatch"
)

// Deps carries what the tool handlers need.
type Deps struct {
	Dispatcher *dispatch.Dispatcher
}

// All returns every tool with its spec and handler, in registration order.
func All(deps *Deps) []server.ServerTool {
	return []server.ServerTool{
		{Tool: geneInfoSpec(), Handler: geneInfoHandler(deps)},
		{Tool: geneSearchSpec(), Handler: geneSearchHandler(deps)},
		{Tool: regionInfoSpec(), Handler: regionInfoHandler(deps)},
		{Tool: variantInfoSpec(), Handler: variantInfoHandler(deps)},
		{Tool: clinvarVariantSpec(), Handler: clinvarVariantHandler(deps)},
		{Tool: mitochondrialVariantSpec(), Handler: mitochondrialVariantHandler(deps)},
		{Tool: structuralVariantSpec(), Handler: structuralVariantHandler(deps)},
		{Tool: copyNumberVariantSpec(), Handler: copyNumberVariantHandler(deps)},
		{Tool: variantSearchSpec(), Handler: variantSearchHandler(deps)},
		{Tool: strInfoSpec(), Handler: strInfoHandler(deps)},
		{Tool: liftoverSpec(), Handler: liftoverHandler(deps)},
		{Tool: metadataSpec(), Handler: metadataHandler(deps)},
	}
}

// RegisterAll adds every tool to the server.
func RegisterAll(s *server.MCPServer, deps *Deps) {
	s.AddTools(All(deps)...)
}

// NewServer builds the gnomAD MCP server with all tools registered.
func NewServer(deps *Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"gnomAD MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)
	RegisterAll(s, deps)
	return s
}

// readOnly is the annotation shared by every tool: all gnomAD queries are
// idempotent reads against a remote service.
func readOnly(title string) mcp.ToolOption {
	return func(t *mcp.Tool) {
		mcp.WithTitleAnnotation(title)(t)
		mcp.WithReadOnlyHintAnnotation(true)(t)
		mcp.WithDestructiveHintAnnotation(false)(t)
		mcp.WithIdempotentHintAnnotation(true)(t)
		mcp.WithOpenWorldHintAnnotation(true)(t)
	}
}

// envelopeResult serializes the dispatch envelope as the tool's text result.
func envelopeResult(env dispatch.Envelope) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
