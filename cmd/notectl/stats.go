package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/notes"
	"github.com/unowned-ai/notectl/pkg/todos"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show note and TODO statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showTags, _ := cmd.Flags().GetBool("tags")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()

		noteCount, err := notes.Count(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to count notes: %w", err)
		}

		total, completed, pending, err := todos.Stats(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to gather TODO stats: %w", err)
		}

		tagList, err := notes.ListTags(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}

		todayNotes, err := notes.List(ctx, dbConn, notes.ListFilter{Limit: 1000, TodayOnly: true})
		if err != nil {
			return fmt.Errorf("failed to count today's notes: %w", err)
		}

		fmt.Printf("%s\n\n", bold("Note Statistics:"))
		fmt.Printf("  Total Notes:        %s\n", cyan(noteCount))
		fmt.Printf("  Total TODOs:        %s (%s completed, %s pending)\n",
			cyan(total), green(completed), yellow(pending))
		fmt.Printf("  Tags:               %s unique tags\n", cyan(len(tagList)))

		fmt.Printf("\n%s:\n", bold("Activity"))
		fmt.Printf("  Today:              %s notes\n", cyan(len(todayNotes)))

		if showTags && len(tagList) > 0 {
			fmt.Printf("\n%s:\n", bold("Top Tags"))
			for i, tc := range tagList {
				if i >= 10 {
					break
				}
				fmt.Printf("  %d. %s (%d note%s)\n", i+1, tc.Tag, tc.Count, plural(int(tc.Count)))
			}
		}
		return nil
	},
}

func initStatsCmd() {
	statsCmd.Flags().Bool("tags", false, "Include the top tags by usage")
}
