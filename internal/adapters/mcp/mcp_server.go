// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/vcprompt/internal/ports"
)

// Server exposes repository status as MCP tools using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	source ports.StatusSource
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(source ports.StatusSource, version string) *Server {
	s := &Server{
		source: source,
	}

	s.server = server.NewMCPServer(
		"vcprompt",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	statusTool := mcp.NewTool(
		"vcs_status",
		mcp.WithDescription("Get the version control status (branch, ahead/behind, staged, changed, untracked, conflicts, in-progress operations) of the Git or Mercurial repository enclosing a directory"),
		mcp.WithString(
			"path",
			mcp.Description("Directory to inspect (default: the server's working directory)"),
		),
	)
	s.server.AddTool(statusTool, s.handleStatus)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// handleStatus handles the vcs_status tool.
func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")

	status, err := s.source.Status(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get status: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)
