package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/notes"
)

const dailySkeleton = `# Daily Note - %s

## Tasks
- [ ]

## Notes
-

## Ideas
-

---
Tags: #daily
`

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Open today's daily note",
	Long: `Opens the daily note for a date in your editor, creating it from a
skeleton when none exists yet. Daily notes are tagged 'daily' and there is at
most one per day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		dateFlag, _ := cmd.Flags().GetString("date")

		targetDate, err := resolveDailyDate(dateFlag)
		if err != nil {
			return err
		}
		dateLabel := targetDate.Format("2006-01-02")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		existing, err := notes.FindDaily(ctx, dbConn, targetDate)
		if err != nil {
			return fmt.Errorf("failed to look up daily note: %w", err)
		}

		if show {
			if existing == nil {
				return fmt.Errorf("no daily note found for %s", dateLabel)
			}
			fmt.Printf("%s Daily Note #%d (%s)\n\n", dim("---"), existing.ID, dateLabel)
			fmt.Println(existing.Content)
			return nil
		}

		initial := fmt.Sprintf(dailySkeleton, dateLabel)
		if existing != nil {
			initial = existing.Content
		}

		edited, err := editWithEditor(initial)
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(edited)
		if trimmed == "" {
			return fmt.Errorf("daily note cannot be empty")
		}

		if existing != nil {
			if _, err := notes.Update(ctx, dbConn, existing.ID, trimmed); err != nil {
				return fmt.Errorf("failed to update daily note: %w", err)
			}
			fmt.Printf("%s Daily note updated (%s)\n", checkMark, dateLabel)
			return nil
		}

		id, err := notes.Add(ctx, dbConn, trimmed, []string{"daily"}, "", true)
		if err != nil {
			return fmt.Errorf("failed to create daily note: %w", err)
		}
		fmt.Printf("%s Daily note created (ID: %s, %s)\n", checkMark, cyan(id), dateLabel)
		return nil
	},
}

// resolveDailyDate accepts "", "yesterday", or YYYY-MM-DD.
func resolveDailyDate(dateFlag string) (time.Time, error) {
	switch dateFlag {
	case "":
		return time.Now(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1), nil
	default:
		parsed, err := time.ParseInLocation("2006-01-02", dateFlag, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or 'yesterday'", dateFlag)
		}
		return parsed, nil
	}
}

func initDailyCmd() {
	dailyCmd.Flags().Bool("show", false, "Print the daily note instead of opening the editor")
	dailyCmd.Flags().StringP("date", "d", "", "Date of the daily note (YYYY-MM-DD or 'yesterday', default today)")
}
