package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded generation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		factID, _ := cmd.Flags().GetString("fact-id")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		var runs []store.Run
		if factID != "" {
			runs, err = s.RunRepo().RunsForFact(cmd.Context(), factID)
			if err == nil && limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}
		} else {
			runs, err = s.RunRepo().RecentRuns(cmd.Context(), limit)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-24s  %-10s  %6s  %5s  %5s  %5s  %s\n",
			"Seq", "Timestamp", "Fact", "Subject", "Factor", "Total", "Dups", "Fail", "Seed")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range runs {
			fmt.Fprintf(out, "%-5d  %-19s  %-24s  %-10s  %6d  %5d  %5d  %5d  %d\n",
				r.Sequence,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.BaseFactID,
				r.Subject,
				r.Factor,
				r.Total,
				r.DuplicatesRemoved,
				len(r.Failures),
				r.Seed,
			)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 for all)")
	runsCmd.Flags().String("fact-id", "", "Only show runs of this base fact")
}
