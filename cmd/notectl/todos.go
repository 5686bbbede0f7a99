package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/todos"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage TODOs",
	Long:  `Create, list, complete, and delete TODO items with priorities and due dates.`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add [task]",
	Short: "Add a new TODO",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, _ := cmd.Flags().GetString("priority")
		due, _ := cmd.Flags().GetString("due")

		task := strings.TrimSpace(args[0])
		if task == "" {
			return fmt.Errorf("task cannot be empty")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		id, err := todos.Add(context.Background(), dbConn, task, priority, due)
		if err != nil {
			return fmt.Errorf("failed to add TODO: %w", err)
		}

		printTodoAdded(id, task)
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List TODOs ordered by priority and due date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pendingOnly, _ := cmd.Flags().GetBool("pending")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		result, err := todos.List(ctx, dbConn, pendingOnly)
		if err != nil {
			return fmt.Errorf("failed to list TODOs: %w", err)
		}

		printTodosTable(result)

		overdue, err := todos.CountOverdue(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to count overdue TODOs: %w", err)
		}
		dueToday, err := todos.CountDueToday(ctx, dbConn)
		if err != nil {
			return fmt.Errorf("failed to count TODOs due today: %w", err)
		}
		printTodoSummary(overdue, dueToday)
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a TODO as done",
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

		done, err := todos.MarkDone(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to complete TODO: %w", err)
		}
		if !done {
			return fmt.Errorf("TODO %d not found", id)
		}

		printTodoDone(id)
		return nil
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a TODO",
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

		deleted, err := todos.Delete(context.Background(), dbConn, id)
		if err != nil {
			return fmt.Errorf("failed to delete TODO: %w", err)
		}
		if !deleted {
			return fmt.Errorf("TODO %d not found", id)
		}

		fmt.Printf("%s TODO %s deleted\n", checkMark, cyan(id))
		return nil
	},
}

func initTodoCmds() {
	todoAddCmd.Flags().StringP("priority", "p", "", "Priority: high, medium, or low (default medium)")
	todoAddCmd.Flags().StringP("due", "d", "", "Due date, YYYY-MM-DD")

	todoListCmd.Flags().Bool("pending", false, "Only show incomplete TODOs")

	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoDoneCmd, todoDeleteCmd)
}
