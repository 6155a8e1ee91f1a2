package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/factforge/internal/generator"
	"github.com/abhisek/factforge/internal/question"
)

var errInvalidQuestions = errors.New("batch contains invalid questions")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-validate a JSON question batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("questions")
		qs, err := question.LoadQuestions(path)
		if err != nil {
			return err
		}
		p, err := loadPolicy(cmd)
		if err != nil {
			return err
		}

		reg := generator.NewRegistry(p)
		out := cmd.OutOrStdout()
		invalid, total := 0, 0
		for _, q := range qs {
			v := reg.Validate(q)
			total += v.QualityScore
			status := "ok"
			if !v.IsValid {
				status = "INVALID"
				invalid++
			}
			fmt.Fprintf(out, "%-7s %3d  %-21s %-6s %s\n", status, v.QualityScore, q.Type, q.Difficulty, q.ID)
			for _, issue := range v.Issues {
				fmt.Fprintf(out, "        - %s\n", issue)
			}
		}

		avg := 0
		if len(qs) > 0 {
			avg = total / len(qs)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%d questions, %d invalid, average quality %d\n", len(qs), invalid, avg)

		if invalid > 0 {
			return errInvalidQuestions
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("questions", "", "JSON file holding an array of questions")
	_ = validateCmd.MarkFlagRequired("questions")
}
