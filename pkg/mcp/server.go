// Package mcp exposes the notectl repositories as Model Context Protocol
// tools over stdio. Everything written to stdout is JSON-RPC; diagnostics go
// to stderr only.
package mcp

import (
	"database/sql"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	notectl "github.com/unowned-ai/notectl/pkg"
	pkgdb "github.com/unowned-ai/notectl/pkg/db"
	"github.com/unowned-ai/notectl/pkg/utils"
)

type NotectlMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DBPath    string
}

// NewNotectlMCPServer opens (or creates) the store at dbPath, falling back
// to the per-OS default when empty, initializes the schema and builds an
// MCP server around it. Register tools before calling Start.
func NewNotectlMCPServer(dbPath string) (*NotectlMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Notectl MCP Server",
		notectl.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	// WAL + FULL sync: an MCP client may hammer the store harder than an
	// interactive shell does.
	conn, err := pkgdb.OpenDBConnection(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.Initialize(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database schema for '%s': %w", resolvedPath, err)
	}

	return &NotectlMCPServer{
		mcpServer: s,
		db:        conn,
		DBPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *NotectlMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *NotectlMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer returns the wrapped MCP server for tool registration.
func (s *NotectlMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close releases the database connection.
func (s *NotectlMCPServer) Close() error {
	return s.db.Close()
}

// RegisterAllTools wires every notectl tool onto the server.
func (s *NotectlMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)

	RegisterAddNoteTool(s.mcpServer, s.db)
	RegisterListNotesTool(s.mcpServer, s.db)
	RegisterGetNoteTool(s.mcpServer, s.db)
	RegisterUpdateNoteTool(s.mcpServer, s.db)
	RegisterDeleteNoteTool(s.mcpServer, s.db)
	RegisterSearchNotesTool(s.mcpServer, s.db)
	RegisterListTagsTool(s.mcpServer, s.db)
	RegisterManageNoteTagsTool(s.mcpServer, s.db)

	RegisterAddTodoTool(s.mcpServer, s.db)
	RegisterListTodosTool(s.mcpServer, s.db)
	RegisterCompleteTodoTool(s.mcpServer, s.db)
}
