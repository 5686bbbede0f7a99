package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the notectl MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes notes, TODOs,
tags and search as MCP tools via STDIO.

The --dbpath flag is optional. If not provided, a system-specific default
location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\notectl\notes.db
- macOS: ~/Library/Application Support/notectl/notes.db
- Linux: ~/.local/share/notectl/notes.db

Example:

  notectl mcp --dbpath notes.db | tee server.log

  # Or simply use the default location:
  notectl mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		requested := dbPath
		if requested == "" {
			requested = cfg.DBPath
		}

		srv, err := mcp.NewNotectlMCPServer(requested)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterAllTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "notectl MCP server started. DB: %s\n", srv.DBPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, add_note, list_notes, get_note, update_note, delete_note, search_notes, list_tags, manage_note_tags, add_todo, list_todos, complete_todo")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
