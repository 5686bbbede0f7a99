package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/notes"
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a new note",
	Long:  `Adds a note with optional tags and category. Content can also be piped in with --stdin.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useStdin, _ := cmd.Flags().GetBool("stdin")
		tagsFlag, _ := cmd.Flags().GetString("tags")
		category, _ := cmd.Flags().GetString("category")

		var content string
		if useStdin {
			buf, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			content = strings.TrimSpace(string(buf))
		} else if len(args) == 1 {
			content = strings.TrimSpace(args[0])
		} else {
			return fmt.Errorf("please provide note content or use --stdin")
		}

		if content == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		var tagList []string
		if tagsFlag != "" {
			tagList = strings.Split(tagsFlag, ",")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		id, err := notes.Add(context.Background(), dbConn, content, tagList, category, false)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		printNoteAdded(id, content)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent notes",
	Long:  `Lists notes newest first. Filter by tag, category, or today's activity.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		tag, _ := cmd.Flags().GetString("tag")
		category, _ := cmd.Flags().GetString("category")
		todayOnly, _ := cmd.Flags().GetBool("today")

		if limit <= 0 {
			limit = cfg.ListLimit
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		result, err := notes.List(context.Background(), dbConn, notes.ListFilter{
			Limit:     limit,
			Tag:       tag,
			Category:  category,
			TodayOnly: todayOnly,
		})
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}

		title := "Recent Notes"
		if todayOnly {
			title = "Today's Notes"
		}
		printNotesTable(result, title)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Full-text search across notes",
	Long: `Searches note content via the full-text index. Every term must match.
With --tag the search becomes an exact tag lookup and terms are ignored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
		full, _ := cmd.Flags().GetBool("full")

		if len(args) == 0 && tag == "" {
			return fmt.Errorf("provide search terms or --tag")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		result, err := notes.Search(context.Background(), dbConn, args, tag, caseSensitive)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		query := strings.Join(args, " ")
		if tag != "" {
			query = "#" + tag
		}
		printSearchResults(result, query, full)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		note, err := notes.Get(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if note == nil {
			return fmt.Errorf("note %d not found", id)
		}

		fmt.Printf("%s Note #%s\n\n", dim("---"), cyan(note.ID))
		fmt.Println(note.Content)
		fmt.Printf("\n%s %s\n", dim("Created:"), note.CreatedAt.Format("2006-01-02 15:04:05"))
		if note.Category != "" {
			fmt.Printf("%s %s\n", dim("Category:"), note.Category)
		}
		if len(note.Tags) > 0 {
			fmt.Printf("%s %s\n", dim("Tags:"), strings.Join(note.Tags, ", "))
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note in your editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		note, err := notes.Get(ctx, dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if note == nil {
			return fmt.Errorf("note %d not found", id)
		}

		edited, err := editWithEditor(note.Content)
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(edited)
		if trimmed == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		updated, err := notes.Update(ctx, dbConn, id, trimmed)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		if !updated {
			return fmt.Errorf("note %d not found", id)
		}

		fmt.Printf("%s Note %s updated\n", checkMark, cyan(id))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNoteID(args[0])
		if err != nil {
			return err
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		deleted, err := notes.Delete(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		if !deleted {
			return fmt.Errorf("note %d not found", id)
		}

		printNoteDeleted(id)
		return nil
	},
}

func parseNoteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be a number", raw)
	}
	return id, nil
}

func initNotesCmds() {
	addCmd.Flags().StringP("tags", "t", "", "Comma-separated tags for the note")
	addCmd.Flags().StringP("category", "c", "", "Category for the note")
	addCmd.Flags().Bool("stdin", false, "Read note content from stdin")

	listCmd.Flags().IntP("limit", "n", 0, "Maximum number of notes to show (default from config)")
	listCmd.Flags().StringP("tag", "t", "", "Only notes carrying this tag")
	listCmd.Flags().StringP("category", "c", "", "Only notes in this category")
	listCmd.Flags().Bool("today", false, "Only notes created today")

	searchCmd.Flags().StringP("tag", "t", "", "Search by tag instead of content")
	searchCmd.Flags().Bool("case-sensitive", false, "Require exact-case matches")
	searchCmd.Flags().Bool("full", false, "Show full note content in results")
}
