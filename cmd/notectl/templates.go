package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/notes"
	"github.com/unowned-ai/notectl/pkg/templates"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage note templates",
	Long: `Templates are named bodies with placeholders. {date}, {time}, and
{datetime} are filled automatically; other {name} placeholders come from flags
like --title when a note is created from the template.`,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create or replace a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useEditor, _ := cmd.Flags().GetBool("editor")
		content, _ := cmd.Flags().GetString("content")
		name := args[0]

		if useEditor {
			edited, err := editWithEditor("")
			if err != nil {
				return err
			}
			content = edited
		} else if content == "" {
			return fmt.Errorf("provide --content or use --editor")
		}

		content = strings.TrimSpace(content)
		if content == "" {
			return fmt.Errorf("template content cannot be empty")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := templates.Create(context.Background(), dbConn, name, content); err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		fmt.Printf("%s Template '%s' saved\n", checkMark, name)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		result, err := templates.List(context.Background(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(result) == 0 {
			fmt.Println(dim("No templates found."))
			return nil
		}

		fmt.Printf("%s\n\n", bold("Templates:"))
		for _, tmpl := range result {
			fmt.Printf("  %s\n", cyan(tmpl.Name))
			fmt.Printf("    %s\n", dim(truncate(tmpl.Content, 60)))
		}
		return nil
	},
}

var templateEditCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Edit a template in your editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		tmpl, err := templates.Get(ctx, dbConn, name)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		if tmpl == nil {
			return fmt.Errorf("template '%s' not found", name)
		}

		edited, err := editWithEditor(tmpl.Content)
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(edited)
		if trimmed == "" {
			return fmt.Errorf("template content cannot be empty")
		}

		if err := templates.Create(ctx, dbConn, name, trimmed); err != nil {
			return fmt.Errorf("failed to update template: %w", err)
		}

		fmt.Printf("%s Template '%s' updated\n", checkMark, name)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		deleted, err := templates.Delete(context.Background(), dbConn, name)
		if err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		if !deleted {
			return fmt.Errorf("template '%s' not found", name)
		}

		fmt.Printf("%s Template '%s' deleted\n", checkMark, name)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note from a template",
	Long:  `Renders the template's placeholders, opens the result in your editor, and saves the final content as a new note.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templateName, _ := cmd.Flags().GetString("template")
		title, _ := cmd.Flags().GetString("title")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ctx := context.Background()
		tmpl, err := templates.Get(ctx, dbConn, templateName)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		if tmpl == nil {
			return fmt.Errorf("template '%s' not found", templateName)
		}

		vars := map[string]string{}
		if title != "" {
			vars["title"] = title
		}
		rendered := templates.Render(tmpl.Content, vars)

		edited, err := editWithEditor(rendered)
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(edited)
		if trimmed == "" {
			return fmt.Errorf("note content cannot be empty")
		}

		id, err := notes.Add(ctx, dbConn, trimmed, nil, "", false)
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}

		printNoteAdded(id, trimmed)
		return nil
	},
}

func initTemplateCmds() {
	templateCreateCmd.Flags().Bool("editor", false, "Compose the template in your editor")
	templateCreateCmd.Flags().StringP("content", "c", "", "Template content")

	templateCmd.AddCommand(templateCreateCmd, templateListCmd, templateEditCmd, templateDeleteCmd)

	newCmd.Flags().StringP("template", "t", "", "Template to instantiate (required)")
	newCmd.MarkFlagRequired("template")
	newCmd.Flags().String("title", "", "Value for the {title} placeholder")
}
