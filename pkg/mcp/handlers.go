package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/notectl/pkg/notes"
	"github.com/unowned-ai/notectl/pkg/todos"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the notectl MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_notectl"), nil
	})
}

// RegisterAddNoteTool registers the add_note tool.
func RegisterAddNoteTool(s *server.MCPServer, conn *sql.DB) {
	addNote := mcp.NewTool("add_note",
		mcp.WithDescription("Creates a new note with optional tags and category."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note content.")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags.")),
		mcp.WithString("category", mcp.Description("Optional category.")),
	)
	s.AddTool(addNote, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, ok := request.Params.Arguments["content"].(string)
		if !ok || strings.TrimSpace(content) == "" {
			return mcp.NewToolResultError("'content' parameter is required and must be a non-empty string."), nil
		}
		category, _ := request.Params.Arguments["category"].(string)

		var tagList []string
		if raw, ok := request.Params.Arguments["tags"].(string); ok && raw != "" {
			tagList = strings.Split(raw, ",")
		}

		id, err := notes.Add(ctx, conn, strings.TrimSpace(content), tagList, category, false)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add note: %v", err)), nil
		}

		note, err := notes.Get(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read back note %d: %v", id, err)), nil
		}
		return jsonResult(note)
	})
}

// RegisterListNotesTool registers the list_notes tool.
func RegisterListNotesTool(s *server.MCPServer, conn *sql.DB) {
	listNotes := mcp.NewTool("list_notes",
		mcp.WithDescription("Lists recent notes, newest first, with optional tag/category/today filters."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of notes to return (default 10).")),
		mcp.WithString("tag", mcp.Description("Only notes carrying this tag.")),
		mcp.WithString("category", mcp.Description("Only notes in this category.")),
		mcp.WithBoolean("today", mcp.Description("Only notes created today.")),
	)
	s.AddTool(listNotes, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := notes.ListFilter{Limit: 10}
		if limit, ok := request.Params.Arguments["limit"].(float64); ok && limit > 0 {
			filter.Limit = int(limit)
		}
		filter.Tag, _ = request.Params.Arguments["tag"].(string)
		filter.Category, _ = request.Params.Arguments["category"].(string)
		filter.TodayOnly, _ = request.Params.Arguments["today"].(bool)

		result, err := notes.List(ctx, conn, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list notes: %v", err)), nil
		}
		return jsonResult(result)
	})
}

// RegisterGetNoteTool registers the get_note tool.
func RegisterGetNoteTool(s *server.MCPServer, conn *sql.DB) {
	getNote := mcp.NewTool("get_note",
		mcp.WithDescription("Retrieves a single note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id.")),
	)
	s.AddTool(getNote, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := noteID(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		note, err := notes.Get(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get note %d: %v", id, err)), nil
		}
		if note == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return jsonResult(note)
	})
}

// RegisterUpdateNoteTool registers the update_note tool.
func RegisterUpdateNoteTool(s *server.MCPServer, conn *sql.DB) {
	updateNote := mcp.NewTool("update_note",
		mcp.WithDescription("Replaces a note's content and re-synchronizes its search index entry."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id.")),
		mcp.WithString("content", mcp.Required(), mcp.Description("New note content.")),
	)
	s.AddTool(updateNote, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := noteID(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}
		content, ok := request.Params.Arguments["content"].(string)
		if !ok || strings.TrimSpace(content) == "" {
			return mcp.NewToolResultError("'content' parameter is required and must be a non-empty string."), nil
		}

		updated, err := notes.Update(ctx, conn, id, strings.TrimSpace(content))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update note %d: %v", id, err)), nil
		}
		if !updated {
			return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", id)), nil
		}

		note, err := notes.Get(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read back note %d: %v", id, err)), nil
		}
		return jsonResult(note)
	})
}

// RegisterDeleteNoteTool registers the delete_note tool.
func RegisterDeleteNoteTool(s *server.MCPServer, conn *sql.DB) {
	deleteNote := mcp.NewTool("delete_note",
		mcp.WithDescription("Deletes a note together with its tags and search index entry."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id.")),
	)
	s.AddTool(deleteNote, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := noteID(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		deleted, err := notes.Delete(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete note %d: %v", id, err)), nil
		}
		if !deleted {
			return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Note %d deleted.", id)), nil
	})
}

// RegisterSearchNotesTool registers the search_notes tool.
func RegisterSearchNotesTool(s *server.MCPServer, conn *sql.DB) {
	searchNotes := mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search over note content. Every term must match; with 'tag' set the search becomes an exact tag lookup."),
		mcp.WithString("terms", mcp.Description("Space-separated search terms.")),
		mcp.WithString("tag", mcp.Description("Search by tag instead of content.")),
		mcp.WithBoolean("case_sensitive", mcp.Description("Require exact-case matches.")),
	)
	s.AddTool(searchNotes, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawTerms, _ := request.Params.Arguments["terms"].(string)
		tag, _ := request.Params.Arguments["tag"].(string)
		caseSensitive, _ := request.Params.Arguments["case_sensitive"].(bool)

		if rawTerms == "" && tag == "" {
			return mcp.NewToolResultError("Provide 'terms' or 'tag'."), nil
		}

		result, err := notes.Search(ctx, conn, strings.Fields(rawTerms), tag, caseSensitive)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}
		return jsonResult(result)
	})
}

// RegisterListTagsTool registers the list_tags tool.
func RegisterListTagsTool(s *server.MCPServer, conn *sql.DB) {
	listTags := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists every tag with the number of notes carrying it."),
	)
	s.AddTool(listTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		counts, err := notes.ListTags(ctx, conn)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}
		return jsonResult(counts)
	})
}

// RegisterManageNoteTagsTool registers the manage_note_tags tool.
func RegisterManageNoteTagsTool(s *server.MCPServer, conn *sql.DB) {
	manageTags := mcp.NewTool("manage_note_tags",
		mcp.WithDescription("Adds and/or removes tags on a note."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id.")),
		mcp.WithString("add", mcp.Description("Comma-separated tags to add.")),
		mcp.WithString("remove", mcp.Description("Comma-separated tags to remove.")),
	)
	s.AddTool(manageTags, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := noteID(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}
		addRaw, _ := request.Params.Arguments["add"].(string)
		removeRaw, _ := request.Params.Arguments["remove"].(string)
		if addRaw == "" && removeRaw == "" {
			return mcp.NewToolResultError("Provide 'add' or 'remove'."), nil
		}

		note, err := notes.Get(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get note %d: %v", id, err)), nil
		}
		if note == nil {
			return mcp.NewToolResultError(fmt.Sprintf("Note %d not found.", id)), nil
		}

		for _, tag := range splitTags(addRaw) {
			if err := notes.AddTag(ctx, conn, id, tag); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add tag %q: %v", tag, err)), nil
			}
		}
		for _, tag := range splitTags(removeRaw) {
			if _, err := notes.RemoveTag(ctx, conn, id, tag); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to remove tag %q: %v", tag, err)), nil
			}
		}

		note, err = notes.Get(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read back note %d: %v", id, err)), nil
		}
		return jsonResult(note)
	})
}

// RegisterAddTodoTool registers the add_todo tool.
func RegisterAddTodoTool(s *server.MCPServer, conn *sql.DB) {
	addTodo := mcp.NewTool("add_todo",
		mcp.WithDescription("Creates a TODO with optional priority and due date."),
		mcp.WithString("task", mcp.Required(), mcp.Description("Task description.")),
		mcp.WithString("priority", mcp.Description("high, medium or low (default medium).")),
		mcp.WithString("due", mcp.Description("Due date, YYYY-MM-DD.")),
	)
	s.AddTool(addTodo, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		task, ok := request.Params.Arguments["task"].(string)
		if !ok || strings.TrimSpace(task) == "" {
			return mcp.NewToolResultError("'task' parameter is required and must be a non-empty string."), nil
		}
		priority, _ := request.Params.Arguments["priority"].(string)
		due, _ := request.Params.Arguments["due"].(string)

		id, err := todos.Add(ctx, conn, strings.TrimSpace(task), priority, due)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add TODO: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("TODO %d created.", id)), nil
	})
}

// RegisterListTodosTool registers the list_todos tool.
func RegisterListTodosTool(s *server.MCPServer, conn *sql.DB) {
	listTodos := mcp.NewTool("list_todos",
		mcp.WithDescription("Lists TODOs ordered by priority then due date."),
		mcp.WithBoolean("pending", mcp.Description("Only incomplete TODOs.")),
	)
	s.AddTool(listTodos, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pendingOnly, _ := request.Params.Arguments["pending"].(bool)

		result, err := todos.List(ctx, conn, pendingOnly)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list TODOs: %v", err)), nil
		}
		return jsonResult(result)
	})
}

// RegisterCompleteTodoTool registers the complete_todo tool.
func RegisterCompleteTodoTool(s *server.MCPServer, conn *sql.DB) {
	completeTodo := mcp.NewTool("complete_todo",
		mcp.WithDescription("Marks a TODO as done."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("TODO id.")),
	)
	s.AddTool(completeTodo, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, ok := noteID(request)
		if !ok {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		done, err := todos.MarkDone(ctx, conn, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to complete TODO %d: %v", id, err)), nil
		}
		if !done {
			return mcp.NewToolResultError(fmt.Sprintf("TODO %d not found.", id)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("TODO %d completed.", id)), nil
	})
}

// noteID extracts the numeric "id" argument. JSON numbers arrive as float64.
func noteID(request mcp.CallToolRequest) (int64, bool) {
	raw, ok := request.Params.Arguments["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(raw), true
}

// splitTags splits a comma-separated tag list, trimming and dropping empties.
func splitTags(raw string) []string {
	var out []string
	for _, tag := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
