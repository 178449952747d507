package main

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"librarian-backend/internal/domains/spreadsheet/service"
)

var errNoArchive = errors.New("object storage is not configured (MINIO_ENABLED=false or unreachable)")

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived import workbooks",
	}

	list := &cobra.Command{
		Use:   "list [students|books]",
		Short: "List archived workbooks, newest last",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.container.Storage == nil {
				return errNoArchive
			}

			prefix := service.ArchivePrefix
			if len(args) == 1 {
				prefix += args[0] + "/"
			}

			keys, err := a.container.Storage.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(a.out, "No archived workbooks")
				return nil
			}
			for _, key := range keys {
				fmt.Fprintln(a.out, key)
			}
			return nil
		},
	}

	var dir string
	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Download an archived workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.container.Storage == nil {
				return errNoArchive
			}

			data, err := a.container.Storage.Download(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dest := filepath.Join(dir, path.Base(args[0]))
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			fmt.Fprintf(a.out, "Wrote %s\n", dest)
			return nil
		},
	}
	get.Flags().StringVarP(&dir, "output-dir", "o", ".", "directory for the workbook")

	cmd.AddCommand(list, get)
	return cmd
}
