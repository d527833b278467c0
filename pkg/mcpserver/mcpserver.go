// Package mcpserver exposes the accessibility checks as Model Context
// Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jingkaihe/a11y/pkg/logger"
	"github.com/jingkaihe/a11y/pkg/tools"
	"github.com/jingkaihe/a11y/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
)

// ServerName is the MCP implementation name reported to clients
const ServerName = "a11y"

// Server wraps an MCP server with one MCP tool per registry tool
type Server struct {
	mcp      *server.MCPServer
	registry *tools.Registry
}

// New builds the MCP server and registers every tool in registry
func New(registry *tools.Registry) (*Server, error) {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, version.Get().Version, server.WithToolCapabilities(false)),
		registry: registry,
	}

	for _, tool := range registry.List() {
		schema, err := json.Marshal(tool.GenerateSchema())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal schema for %s", tool.Name())
		}
		s.mcp.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema),
			s.handler(tool.Name()),
		)
	}

	return s, nil
}

// MCPServer returns the underlying mcp-go server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx is cancelled or stdin closes
func (s *Server) Serve(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	logger.G(ctx).Info("starting MCP stdio server")
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}

// handler runs a tool. Rejected input becomes a tool error result rather
// than a protocol error so the client sees the message.
func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := arguments(request.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := s.registry.Run(ctx, name, input)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal result")
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// arguments normalizes MCP call arguments into a tool input map
func arguments(raw any) (map[string]any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid arguments")
	}
	return tools.ParseInputJSON(string(data))
}
