package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/logger"
	"github.com/abhisek/factforge/internal/question"
)

var factorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Show the multiplication plan for a base fact",
	RunE: func(cmd *cobra.Command, args []string) error {
		factPath, _ := cmd.Flags().GetString("fact")
		fact, err := question.LoadBaseFact(factPath)
		if err != nil {
			return err
		}
		p, err := loadPolicy(cmd)
		if err != nil {
			return err
		}

		e := newEngine(cmd, p, logger.Nop())
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Fact:        %s (%s, %s importance)\n", fact.ID, fact.Subject, fact.Importance)
		fmt.Fprintf(out, "Factor:      %d\n", e.CalculateMultiplicationFactor(fact))
		fmt.Fprintf(out, "Relevant:    %s\n", joinTypes(e.RelevantQuestionTypes(fact)))
		fmt.Fprintf(out, "High impact: %s\n", joinTypes(e.HighImpactTypes(fact)))
		return nil
	},
}

func init() {
	factorCmd.Flags().String("fact", "", "Base fact file (.yaml, .yml or .json)")
	_ = factorCmd.MarkFlagRequired("fact")
}

func joinTypes(ts []question.Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
