//go:build sqlite_fts5

package notes

import (
	"context"
	"testing"
)

func TestSearchRequiresEveryTerm(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	alphaOnly, err := Add(ctx, conn, "alpha release checklist", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	both, err := Add(ctx, conn, "alpha and beta rollout plan", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := Search(ctx, conn, []string{"alpha", "beta"}, "", false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ID != both {
		t.Errorf("Expected note %d, got %d", both, results[0].ID)
	}
	if results[0].ID == alphaOnly {
		t.Errorf("Note %d contains only one term and must not match", alphaOnly)
	}
}

func TestSearchByTagIgnoresTerms(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	tagged, err := Add(ctx, conn, "completely unrelated content", []string{"work"}, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	untagged, err := Add(ctx, conn, "mentions work but has no tag", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := Search(ctx, conn, []string{"mentions"}, "work", false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected exactly the tagged note, got %d results", len(results))
	}
	if results[0].ID != tagged {
		t.Errorf("Expected note %d, got %d", tagged, results[0].ID)
	}
	if results[0].ID == untagged {
		t.Errorf("Tag search must not match untagged note %d", untagged)
	}
}

func TestSearchEmptyTermsReturnsNothing(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if _, err := Add(ctx, conn, "some note", nil, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := Search(ctx, conn, nil, "", false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result for empty terms, got %d notes", len(results))
	}
}

func TestSearchCaseSensitivePostFilter(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	upper, err := Add(ctx, conn, "Docker deployment guide", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	lower, err := Add(ctx, conn, "docker compose cheatsheet", nil, "", false)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// FTS matching is case-insensitive: both notes match.
	loose, err := Search(ctx, conn, []string{"Docker"}, "", false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(loose) != 2 {
		t.Fatalf("Expected 2 case-insensitive matches, got %d", len(loose))
	}

	strict, err := Search(ctx, conn, []string{"Docker"}, "", true)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(strict) != 1 || strict[0].ID != upper {
		t.Errorf("Expected only note %d to survive case-sensitive filter, got %v", upper, strict)
	}
	for _, n := range strict {
		if n.ID == lower {
			t.Errorf("Lowercase note %d must be filtered out", lower)
		}
	}
}

func TestSearchEscapesEmbeddedQuotes(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if _, err := Add(ctx, conn, `he said "hello" and left`, nil, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// A term carrying a double quote must not break the MATCH expression.
	results, err := Search(ctx, conn, []string{`"hello"`}, "", false)
	if err != nil {
		t.Fatalf("Search with quoted term failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestSearchPopulatesTags(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	if _, err := Add(ctx, conn, "tagged searchable note", []string{"work"}, "", false); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := Search(ctx, conn, []string{"searchable"}, "", false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if len(results[0].Tags) != 1 || results[0].Tags[0] != "work" {
		t.Errorf("Expected tags [work] on search result, got %v", results[0].Tags)
	}
}
