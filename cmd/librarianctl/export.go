package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"librarian-backend/internal/domains/spreadsheet/model"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "export <students|books>",
		Short:     "Write a collection to an .xlsx workbook",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(model.KindStudents), string(model.KindBooks)},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				file *model.ExportFile
				err  error
			)
			if model.Kind(args[0]) == model.KindStudents {
				file, err = a.container.SpreadsheetService.ExportStudents(cmd.Context())
			} else {
				file, err = a.container.SpreadsheetService.ExportBooks(cmd.Context())
			}
			if err != nil {
				return err
			}

			if file.Empty != "" {
				fmt.Fprintf(a.out, "No %s to export\n", args[0])
				return nil
			}

			path := filepath.Join(dir, file.Filename)
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Fprintf(a.out, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "output-dir", "o", ".", "directory for the workbook")
	return cmd
}
