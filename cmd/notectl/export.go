package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/notectl/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes to markdown, JSON, or HTML",
	Long:  `Exports notes, optionally filtered by tag and date range, to stdout or a file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		tag, _ := cmd.Flags().GetString("tag")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		noteSet, err := export.Notes(context.Background(), dbConn, export.Options{
			Tag:  tag,
			From: from,
			To:   to,
		})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		rendered, err := export.Render(noteSet, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if output == "" {
			fmt.Println(rendered)
			return nil
		}

		if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("%s Exported to %s\n", checkMark, cyan(output))
		return nil
	},
}

func initExportCmd() {
	exportCmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, json, or html")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().StringP("tag", "t", "", "Only notes carrying this tag")
	exportCmd.Flags().String("from", "", "Only notes created on or after this date (YYYY-MM-DD)")
	exportCmd.Flags().String("to", "", "Only notes created on or before this date (YYYY-MM-DD)")
}
