package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import students or books from an .xlsx workbook",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "students <file>",
			Short: "Import rows of (last name, first name, class)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, data, err := readWorkbook(args[0])
				if err != nil {
					return err
				}

				result, err := a.container.SpreadsheetService.ImportStudents(cmd.Context(), name, data)
				if err != nil {
					return err
				}

				printList(a, "Added", result.Added)
				printList(a, "Skipped", result.Skipped)
				return nil
			},
		},
		&cobra.Command{
			Use:   "books <file>",
			Short: "Import rows of (title, author, quantity)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, data, err := readWorkbook(args[0])
				if err != nil {
					return err
				}

				result, err := a.container.SpreadsheetService.ImportBooks(cmd.Context(), name, data)
				if err != nil {
					return err
				}

				printList(a, "Added", result.Added)
				printList(a, "Updated", result.Updated)
				return nil
			},
		},
	)

	return cmd
}

func readWorkbook(path string) (string, []byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return filepath.Base(path), data, nil
}

func printList(a *app, title string, items []string) {
	fmt.Fprintf(a.out, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(a.out, "  - %s\n", item)
	}
}
