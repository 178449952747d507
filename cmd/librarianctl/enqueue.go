package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarian-backend/internal/infrastructure/cache"
	"librarian-backend/internal/infrastructure/queue"
)

func newEnqueueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "enqueue",
		Short:       "Queue a lending maintenance task for the worker",
		Annotations: map[string]string{skipContainer: "true"},
	}

	var limit int
	scan := &cobra.Command{
		Use:         "scan-overdue",
		Short:       "Log every overdue hold",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipContainer: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.cfg.Jobs.OverdueScanLimit
			}

			client := queue.NewClient(cache.AsynqRedisOpt(a.cfg.Redis))
			defer client.Close()

			id, err := client.EnqueueScanOverdue(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Enqueued overdue scan %s\n", id)
			return nil
		},
	}
	scan.Flags().IntVar(&limit, "limit", 0, "maximum holds to report (default JOB_OVERDUE_SCAN_LIMIT)")

	var dryRun bool
	reconcile := &cobra.Command{
		Use:         "reconcile",
		Short:       "Repair borrowed_count drift",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipContainer: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := queue.NewClient(cache.AsynqRedisOpt(a.cfg.Redis))
			defer client.Close()

			id, err := client.EnqueueReconcile(cmd.Context(), dryRun, "librarianctl")
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Enqueued reconciliation %s\n", id)
			return nil
		},
	}
	reconcile.Flags().BoolVar(&dryRun, "dry-run", false, "report drift without repairing it")

	cmd.AddCommand(scan, reconcile)
	return cmd
}
