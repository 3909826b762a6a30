package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/commentguard/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded classification runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		runs, err := s.ListRuns(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-24s  %6s  %6s  %5s  %6s  %5s  %5s\n",
			"Run ID", "Started", "Model", "Total", "Offens", "Pre", "Remote", "NoTxt", "Fail")
		fmt.Println(strings.Repeat("─", 124))

		for _, r := range runs {
			model := r.Model
			if len(model) > 24 {
				model = model[:24]
			}
			fmt.Printf("%-36s  %-19s  %-24s  %6d  %6d  %5d  %6d  %5d  %5d\n",
				r.ID,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				model,
				r.Total,
				r.Offensive,
				r.Prefiltered,
				r.Remote,
				r.MissingText,
				r.Exhausted,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}
