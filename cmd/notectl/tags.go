package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/notes"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags and their usage counts",
	Long:  `Without flags, lists every tag with the number of notes carrying it. Use --show to list the notes behind one tag.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showTag, _ := cmd.Flags().GetString("show")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		if showTag != "" {
			result, err := notes.List(ctx, dbConn, notes.ListFilter{Limit: 100, Tag: showTag})
			if err != nil {
				return fmt.Errorf("failed to list notes by tag: %w", err)
			}
			printNotesTable(result, fmt.Sprintf("Notes tagged '%s'", showTag))
			return nil
		}

		counts, err := notes.ListTags(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		printTagsTable(counts)
		return nil
	},
}

var tagsRenameCmd = &cobra.Command{
	Use:   "rename [old] [new]",
	Short: "Rename a tag across all notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldTag, newTag := args[0], args[1]
		if oldTag == "" || newTag == "" {
			return fmt.Errorf("tag names cannot be empty")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		count, err := notes.RenameTag(context.Background(), dbConn, oldTag, newTag)
		if err != nil {
			return fmt.Errorf("failed to rename tag: %w", err)
		}

		fmt.Printf("%s Renamed tag '%s' -> '%s' (%d note%s)\n", checkMark, oldTag, newTag, count, plural(int(count)))
		return nil
	},
}

func initTagsCmd() {
	tagsCmd.Flags().StringP("show", "s", "", "Show notes carrying this tag")
	tagsCmd.AddCommand(tagsRenameCmd)
}
