package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print library totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.container.StatsService.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%-20s %d\n", "Students", s.TotalStudents)
			fmt.Fprintf(a.out, "%-20s %d\n", "Books", s.TotalBooks)
			fmt.Fprintf(a.out, "%-20s %d\n", "Copies", s.TotalCopies)
			fmt.Fprintf(a.out, "%-20s %d\n", "Borrowed copies", s.BorrowedCopies)
			fmt.Fprintf(a.out, "%-20s %d\n", "Available copies", s.AvailableCopies)
			fmt.Fprintf(a.out, "%-20s %d\n", "Available books", s.AvailableBooks)
			fmt.Fprintf(a.out, "%-20s %s%%\n", "Utilization", s.UtilizationPercent.String())

			if len(s.ClassCounts) == 0 {
				return nil
			}

			names := make([]string, 0, len(s.ClassCounts))
			for name := range s.ClassCounts {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintf(a.out, "\n%-20s %s\n", "Class", "Students")
			fmt.Fprintln(a.out, strings.Repeat("-", 30))
			for _, name := range names {
				fmt.Fprintf(a.out, "%-20s %d\n", name, s.ClassCounts[name])
			}
			return nil
		},
	}
}
