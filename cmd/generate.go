package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/engine"
	"github.com/abhisek/factforge/internal/question"
	"github.com/abhisek/factforge/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Multiply a base fact into a question batch",
	Long: "Reads a base fact (YAML or JSON), runs the main, high-impact and\n" +
		"contextual passes and writes the deduplicated batch as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		factPath, _ := cmd.Flags().GetString("fact")
		outPath, _ := cmd.Flags().GetString("out")
		record, _ := cmd.Flags().GetBool("record")

		fact, err := question.LoadBaseFact(factPath)
		if err != nil {
			return err
		}
		p, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		res := newEngine(cmd, p, log).Multiply(cmd.Context(), fact)

		if err := writeBatch(cmd, outPath, res.Questions); err != nil {
			return err
		}

		r := res.Report
		fmt.Fprintf(cmd.ErrOrStderr(), "Generated %d questions from %s (factor %d, seed %d, %d duplicates removed, %d failed calls)\n",
			r.Total, r.BaseFactID, r.Factor, r.Seed, r.DuplicatesRemoved, len(r.Failures))

		if !record {
			return nil
		}
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		seq, err := s.RunRepo().AppendRun(cmd.Context(), runEventFromReport(r, p.Version))
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Recorded run #%d\n", seq)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("fact", "", "Base fact file (.yaml, .yml or .json)")
	generateCmd.Flags().String("out", "", "Write the batch to this file instead of stdout")
	generateCmd.Flags().Bool("record", false, "Record a run summary in the audit database")
	addEngineFlags(generateCmd)
	_ = generateCmd.MarkFlagRequired("fact")
}

func writeBatch(cmd *cobra.Command, path string, qs []*question.Question) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if qs == nil {
		qs = []*question.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// runEventFromReport flattens a run report for the audit log.
func runEventFromReport(r engine.Report, policyVersion string) store.RunEventData {
	typeCounts := make(map[string]int, len(r.TypeCounts))
	for t, n := range r.TypeCounts {
		typeCounts[t.String()] = n
	}
	failures := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, f.Error())
	}
	return store.RunEventData{
		BaseFactID:        r.BaseFactID,
		Subject:           r.Subject,
		PolicyVersion:     policyVersion,
		Factor:            r.Factor,
		Seed:              r.Seed,
		MainCount:         r.MainCount,
		HighImpactCount:   r.HighImpactCount,
		ContextualCount:   r.ContextualCount,
		TypeCounts:        typeCounts,
		Failures:          failures,
		DuplicatesRemoved: r.DuplicatesRemoved,
		Total:             r.Total,
		Duration:          r.Duration,
	}
}
