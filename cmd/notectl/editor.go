package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// resolveEditor picks the editor to launch: config first, then $EDITOR,
// then $VISUAL, with vi as the last resort.
func resolveEditor() string {
	if cfg.Editor != "" {
		return cfg.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	return "vi"
}

// editWithEditor writes initial content to a temp file, opens it in the
// resolved editor, and returns the file's content after the editor exits.
// A non-zero editor exit discards the edit.
func editWithEditor(initialContent string) (string, error) {
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("notectl_%s.md", uuid.NewString()))

	if err := os.WriteFile(tmpFile, []byte(initialContent), 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	defer os.Remove(tmpFile)

	editor := resolveEditor()
	cmd := exec.Command(editor, tmpFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %q exited with error: %w", editor, err)
	}

	edited, err := os.ReadFile(tmpFile)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
