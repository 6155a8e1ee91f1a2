package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/app"
	"github.com/abhisek/factforge/internal/generator"
	"github.com/abhisek/factforge/internal/logger"
	"github.com/abhisek/factforge/internal/question"
	"github.com/abhisek/factforge/internal/screens/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Review a batch in the terminal browser",
	Long: "Generates a batch from --fact, or loads one from --questions, and opens\n" +
		"an interactive list with filtering and a detail view per question.",
	RunE: func(cmd *cobra.Command, args []string) error {
		factPath, _ := cmd.Flags().GetString("fact")
		questionsPath, _ := cmd.Flags().GetString("questions")
		if (factPath == "") == (questionsPath == "") {
			return errors.New("exactly one of --fact or --questions is required")
		}

		p, err := loadPolicy(cmd)
		if err != nil {
			return err
		}

		var (
			qs     []*question.Question
			title  string
			status string
		)
		if factPath != "" {
			fact, err := question.LoadBaseFact(factPath)
			if err != nil {
				return err
			}
			// The TUI owns the terminal, so engine logs are dropped.
			res := newEngine(cmd, p, logger.Nop()).Multiply(cmd.Context(), fact)
			qs = res.Questions
			title = fact.ID
			status = fmt.Sprintf("%d questions · seed %d", res.Report.Total, res.Report.Seed)
		} else {
			qs, err = question.LoadQuestions(questionsPath)
			if err != nil {
				return err
			}
			title = questionsPath
			status = fmt.Sprintf("%d questions", len(qs))
		}

		reg := generator.NewRegistry(p)
		items := make([]browse.Item, len(qs))
		for i, q := range qs {
			items[i] = browse.Item{Question: q, Validation: reg.Validate(q)}
		}
		return app.Run(browse.New(title, items), status)
	},
}

func init() {
	browseCmd.Flags().String("fact", "", "Base fact file to generate from")
	browseCmd.Flags().String("questions", "", "Existing JSON batch to review")
	addEngineFlags(browseCmd)
}
