package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Print the effective tuning policy as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPolicy(cmd)
		if err != nil {
			return err
		}
		data, err := p.YAML()
		if err != nil {
			return fmt.Errorf("encode policy: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
