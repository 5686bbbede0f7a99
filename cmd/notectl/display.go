package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/unowned-ai/notectl/pkg/notes"
	"github.com/unowned-ai/notectl/pkg/todos"
)

var (
	checkMark = color.New(color.FgGreen, color.Bold).Sprint("✓")
	cyan      = color.New(color.FgCyan).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
	green     = color.New(color.FgGreen).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
)

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), msg)
}

func printNoteAdded(id int64, content string) {
	fmt.Printf("%s Note added (ID: %s)\n", checkMark, cyan(id))
	fmt.Printf("  %q\n", truncate(content, 60))
	fmt.Printf("  Created: %s\n", dim(time.Now().Format("2006-01-02 15:04:05")))
}

func printNoteDeleted(id int64) {
	fmt.Printf("%s Note %s deleted\n", checkMark, cyan(id))
}

// relativeTime renders a timestamp the way humans scan a list: clock time for
// today, full date once it is more than a day old.
func relativeTime(t time.Time) string {
	diff := time.Since(t)
	clock := t.Format("15:04")

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%s (just now)", clock)
	case diff < time.Hour:
		return fmt.Sprintf("%s (%d min ago)", clock, int(diff.Minutes()))
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		return fmt.Sprintf("%s (%d hour%s ago)", clock, hours, plural(hours))
	default:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%s (%d day%s ago)", t.Format("2006-01-02 15:04"), days, plural(days))
	}
}

func printNotesTable(noteSet []notes.Note, title string) {
	if len(noteSet) == 0 {
		fmt.Println(dim("No notes found."))
		return
	}

	fmt.Printf("%s:\n\n", bold(title))
	for _, n := range noteSet {
		fmt.Printf("%s %s\n", cyan(fmt.Sprintf("[%d]", n.ID)), dim(relativeTime(n.CreatedAt)))
		fmt.Printf("  %s\n", truncate(n.Content, 40))
		if len(n.Tags) > 0 {
			fmt.Printf("  %s %s\n", dim("Tags:"), strings.Join(n.Tags, ", "))
		}
	}
}

func printSearchResults(noteSet []notes.Note, query string, full bool) {
	fmt.Printf("%s: %q\n\n", bold("Search Results"), yellow(query))
	fmt.Printf("Found %d note%s:\n\n", len(noteSet), plural(len(noteSet)))

	for _, n := range noteSet {
		fmt.Printf("%s %s\n", cyan(fmt.Sprintf("[%d]", n.ID)), dim(n.CreatedAt.Format("2006-01-02 15:04")))
		if full {
			fmt.Printf("  %s\n", n.Content)
		} else {
			fmt.Printf("  %s\n", truncate(n.Content, 70))
		}
		if len(n.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", dim(strings.Join(n.Tags, ", ")))
		}
		fmt.Println()
	}
}

func printTodoAdded(id int64, task string) {
	fmt.Printf("%s TODO added (ID: %s)\n", checkMark, cyan(id))
	fmt.Printf("  %q\n", truncate(task, 60))
}

func printTodoDone(id int64) {
	fmt.Printf("%s TODO %s marked as done\n", checkMark, cyan(id))
}

func printTodosTable(todoSet []todos.Todo) {
	if len(todoSet) == 0 {
		fmt.Println(dim("No TODOs found."))
		return
	}

	fmt.Printf("%s\n\n", bold("Active TODOs:"))
	for _, t := range todoSet {
		var priority string
		switch t.Priority {
		case todos.PriorityHigh:
			priority = red("High")
		case todos.PriorityLow:
			priority = green("Low")
		default:
			priority = yellow("Med")
		}

		due := dim("-")
		if t.DueDate != nil {
			today := time.Now()
			dueDay := t.DueDate.Format("2006-01-02")
			switch {
			case dueDay == today.Format("2006-01-02"):
				due = red("Today")
			case t.DueDate.Before(today):
				due = red(fmt.Sprintf("%s (overdue)", t.DueDate.Format("Jan 2")))
			default:
				due = t.DueDate.Format("Jan 2")
			}
		}

		status := dim("Pending")
		if t.Completed {
			status = green("Done")
		}

		fmt.Printf("%s %s\n", cyan(fmt.Sprintf("[%d]", t.ID)), truncate(t.Task, 35))
		fmt.Printf("  Priority: %s  Due: %s  Status: %s\n", priority, due, status)
	}
}

func printTodoSummary(overdue, dueToday int64) {
	overdueStr := "0"
	if overdue > 0 {
		overdueStr = red(overdue)
	}
	dueTodayStr := "0"
	if dueToday > 0 {
		dueTodayStr = yellow(dueToday)
	}
	fmt.Printf("\nOverdue: %s | Due today: %s\n", overdueStr, dueTodayStr)
}

func printTagsTable(tagCounts []notes.TagCount) {
	if len(tagCounts) == 0 {
		fmt.Println(dim("No tags found."))
		return
	}

	fmt.Printf("%s\n\n", bold("All Tags:"))
	for _, tc := range tagCounts {
		fmt.Printf("  %-24s %s\n", tc.Tag, cyan(tc.Count))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// truncate shortens s to max runes, appending an ellipsis when cut. Counting
// runes rather than bytes keeps multibyte content from being split mid-char.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
