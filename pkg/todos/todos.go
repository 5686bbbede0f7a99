// Package todos implements the TODO repository: prioritized tasks with
// optional due dates.
package todos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/notectl/pkg/utils"
)

// Priority is the closed set of todo priorities. Arbitrary input strings are
// normalized through ParsePriority at the boundary; application logic never
// compares raw strings.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes user input to a canonical priority. "high"/"h"
// and "low"/"l" map to their priorities, case-insensitively; anything else
// defaults to medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh
	case "low", "l":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Todo is a single task. DueDate is nil when the task has no due date.
type Todo struct {
	ID        int64      `json:"id"`
	Task      string     `json:"task"`
	Completed bool       `json:"completed"`
	Priority  Priority   `json:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	insertTodoStatement = `
	INSERT INTO todos (task, priority, due_date, created_at)
	VALUES (?, ?, ?, ?)
	`

	// Rank: high, medium, low, then anything unexpected; within a rank,
	// earlier due dates first with no-due-date rows sorted behind every
	// dated row via a far-future sentinel.
	listTodosStatement = `
	SELECT id, task, completed, priority, due_date, created_at
	FROM todos
	%s
	ORDER BY
		CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END,
		COALESCE(due_date, 9999999999) ASC
	`

	markDoneStatement   = `UPDATE todos SET completed = 1 WHERE id = ?`
	deleteTodoStatement = `DELETE FROM todos WHERE id = ?`

	countTodosStatement     = `SELECT COUNT(*) FROM todos`
	countCompletedStatement = `SELECT COUNT(*) FROM todos WHERE completed = 1`
	countOverdueStatement   = `SELECT COUNT(*) FROM todos WHERE completed = 0 AND due_date IS NOT NULL AND due_date < ?`
	countDueTodayStatement  = `SELECT COUNT(*) FROM todos WHERE completed = 0 AND due_date >= ? AND due_date <= ?`
)

// Add inserts a todo and returns its id. priority goes through ParsePriority.
// due, when given, must be a YYYY-MM-DD calendar date and is stored as that
// date's local end-of-day instant; an unparsable due date is treated as
// absent so the todo is still created.
func Add(ctx context.Context, conn *sql.DB, task, priority, due string) (int64, error) {
	var dueTS any
	if due != "" {
		if day, err := time.ParseInLocation("2006-01-02", due, time.Local); err == nil {
			dueTS = utils.EndOfDay(day).Unix()
		}
	}

	res, err := conn.ExecContext(ctx, insertTodoStatement, task, string(ParsePriority(priority)), dueTS, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted todo id: %w", err)
	}
	return id, nil
}

// List returns todos ordered by priority rank, then due date. When
// pendingOnly is set, completed todos are excluded.
func List(ctx context.Context, conn *sql.DB, pendingOnly bool) ([]Todo, error) {
	where := ""
	if pendingOnly {
		where = "WHERE completed = 0"
	}

	rows, err := conn.QueryContext(ctx, fmt.Sprintf(listTodosStatement, where))
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var results []Todo
	for rows.Next() {
		var todo Todo
		var priority string
		var dueTS sql.NullInt64
		var createdAt int64

		if err := rows.Scan(&todo.ID, &todo.Task, &todo.Completed, &priority, &dueTS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan todo row: %w", err)
		}
		todo.Priority = Priority(priority)
		if dueTS.Valid {
			due := time.Unix(dueTS.Int64, 0)
			todo.DueDate = &due
		}
		todo.CreatedAt = time.Unix(createdAt, 0)
		results = append(results, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todo rows: %w", err)
	}
	return results, nil
}

// MarkDone completes a todo and reports whether it existed.
func MarkDone(ctx context.Context, conn *sql.DB, id int64) (bool, error) {
	return execExists(ctx, conn, markDoneStatement, id)
}

// Delete removes a todo and reports whether it existed.
func Delete(ctx context.Context, conn *sql.DB, id int64) (bool, error) {
	return execExists(ctx, conn, deleteTodoStatement, id)
}

func execExists(ctx context.Context, conn *sql.DB, statement string, id int64) (bool, error) {
	res, err := conn.ExecContext(ctx, statement, id)
	if err != nil {
		return false, fmt.Errorf("failed to update todo %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Stats returns the total, completed and pending todo counts.
func Stats(ctx context.Context, conn *sql.DB) (total, completed, pending int64, err error) {
	if err = conn.QueryRowContext(ctx, countTodosStatement).Scan(&total); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count todos: %w", err)
	}
	if err = conn.QueryRowContext(ctx, countCompletedStatement).Scan(&completed); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count completed todos: %w", err)
	}
	return total, completed, total - completed, nil
}

// CountOverdue returns the number of incomplete todos due strictly before
// now.
func CountOverdue(ctx context.Context, conn *sql.DB) (int64, error) {
	var count int64
	err := conn.QueryRowContext(ctx, countOverdueStatement, time.Now().Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue todos: %w", err)
	}
	return count, nil
}

// CountDueToday returns the number of incomplete todos due within today's
// local bounds, inclusive.
func CountDueToday(ctx context.Context, conn *sql.DB) (int64, error) {
	start, end := utils.DayBounds(time.Now())

	var count int64
	err := conn.QueryRowContext(ctx, countDueTodayStatement, start.Unix(), end.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count todos due today: %w", err)
	}
	return count, nil
}
