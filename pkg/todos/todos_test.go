//go:build sqlite_fts5

package todos

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/unowned-ai/notectl/pkg/db"
	"github.com/unowned-ai/notectl/pkg/utils"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenDBConnection(filepath.Join(t.TempDir(), "notes.db"), true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Initialize(conn); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	return conn
}

func setDueDate(t *testing.T, conn *sql.DB, id int64, at time.Time) {
	t.Helper()
	if _, err := conn.Exec("UPDATE todos SET due_date = ? WHERE id = ?", at.Unix(), id); err != nil {
		t.Fatalf("Failed to set due_date for todo %d: %v", id, err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
	}{
		{"high", PriorityHigh},
		{"h", PriorityHigh},
		{"HIGH", PriorityHigh},
		{"low", PriorityLow},
		{"l", PriorityLow},
		{" Low ", PriorityLow},
		{"medium", PriorityMedium},
		{"m", PriorityMedium},
		{"urgent", PriorityMedium},
		{"", PriorityMedium},
	}
	for _, tc := range cases {
		if got := ParsePriority(tc.in); got != tc.want {
			t.Errorf("ParsePriority(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAddStoresNormalizedPriorityAndDueDate(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, 3)
	id, err := Add(ctx, conn, "ship the release", "h", due.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Expected a non-zero todo id")
	}

	list, err := List(ctx, conn, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 todo, got %d", len(list))
	}

	todo := list[0]
	if todo.Priority != PriorityHigh {
		t.Errorf("Expected normalized priority high, got %s", todo.Priority)
	}
	if todo.DueDate == nil {
		t.Fatal("Expected a due date")
	}
	want := utils.EndOfDay(due)
	if !todo.DueDate.Equal(want) {
		t.Errorf("Expected due date %v (end of day), got %v", want, todo.DueDate)
	}
	if todo.Completed {
		t.Error("New todo must not be completed")
	}
}

func TestAddUnparsableDueDateIsDropped(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	id, err := Add(ctx, conn, "fuzzy deadline", "medium", "next tuesday")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Todo must still be created when the due date does not parse")
	}

	list, err := List(ctx, conn, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 todo, got %d", len(list))
	}
	if list[0].DueDate != nil {
		t.Errorf("Expected no due date, got %v", list[0].DueDate)
	}
}

func TestListOrdering(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	lowID, err := Add(ctx, conn, "low, due today", "low", time.Now().Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	highID, err := Add(ctx, conn, "high, no due date", "high", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	mediumID, err := Add(ctx, conn, "medium, due yesterday", "medium", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	setDueDate(t, conn, mediumID, time.Now().AddDate(0, 0, -1))

	list, err := List(ctx, conn, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 todos, got %d", len(list))
	}
	if list[0].ID != highID || list[1].ID != mediumID || list[2].ID != lowID {
		t.Errorf("Expected order high, medium, low; got ids %d, %d, %d", list[0].ID, list[1].ID, list[2].ID)
	}

	t.Run("NoDueDateSortsLastWithinPriority", func(t *testing.T) {
		datedID, err := Add(ctx, conn, "high, due tomorrow", "high", time.Now().AddDate(0, 0, 1).Format("2006-01-02"))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		list, err := List(ctx, conn, false)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if list[0].ID != datedID {
			t.Errorf("Expected dated high todo %d first, got %d", datedID, list[0].ID)
		}
		if list[1].ID != highID {
			t.Errorf("Expected undated high todo %d after dated one, got %d", highID, list[1].ID)
		}
	})
}

func TestListPendingOnly(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	doneID, err := Add(ctx, conn, "already done", "medium", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	pendingID, err := Add(ctx, conn, "still open", "medium", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := MarkDone(ctx, conn, doneID)
	if err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected MarkDone to report true")
	}

	list, err := List(ctx, conn, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != pendingID {
		t.Errorf("Expected only pending todo %d, got %v", pendingID, list)
	}
}

func TestMarkDoneAndDeleteMissing(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	done, err := MarkDone(ctx, conn, 777)
	if err != nil {
		t.Fatalf("MarkDone returned error for missing todo: %v", err)
	}
	if done {
		t.Error("Expected MarkDone to report false for missing todo")
	}

	deleted, err := Delete(ctx, conn, 777)
	if err != nil {
		t.Fatalf("Delete returned error for missing todo: %v", err)
	}
	if deleted {
		t.Error("Expected Delete to report false for missing todo")
	}
}

func TestStatsAndDueCounts(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	overdueID, err := Add(ctx, conn, "overdue task", "high", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	setDueDate(t, conn, overdueID, time.Now().Add(-48*time.Hour))

	if _, err := Add(ctx, conn, "due today", "medium", time.Now().Format("2006-01-02")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	doneID, err := Add(ctx, conn, "finished task", "low", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := MarkDone(ctx, conn, doneID); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	total, completed, pending, err := Stats(ctx, conn)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if total != 3 || completed != 1 || pending != 2 {
		t.Errorf("Expected stats 3/1/2, got %d/%d/%d", total, completed, pending)
	}

	overdue, err := CountOverdue(ctx, conn)
	if err != nil {
		t.Fatalf("CountOverdue failed: %v", err)
	}
	if overdue != 1 {
		t.Errorf("Expected 1 overdue todo, got %d", overdue)
	}

	dueToday, err := CountDueToday(ctx, conn)
	if err != nil {
		t.Fatalf("CountDueToday failed: %v", err)
	}
	if dueToday != 1 {
		t.Errorf("Expected 1 todo due today, got %d", dueToday)
	}
}
