// Package mcp exposes the book operations as Model Context Protocol tools
// over stdio, using the mcp-go library. Each tool handler loads the book
// fresh so external edits are always visible, and failures are reported as
// tool-error payloads rather than killing the server.
package mcp

import (
	"fmt"

	"mdbook/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Server is one MCP server instance bound to a book root.
type Server struct {
	root      string
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for the book rooted at root.
func NewServer(root string, logger *logging.AppLogger) *Server {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Server{root: root, logger: logger}
}

// Start registers all tools and serves requests over stdio until the client
// disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server", "root", s.root)

	s.mcpServer = server.NewMCPServer(
		"mdbook",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
