package main

import (
	"github.com/spf13/cobra"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
)

func newConstantsCmd(loadCalculator func() (*bodycomp.Calculator, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "Print the active calculator constants as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := loadCalculator()
			if err != nil {
				return err
			}
			return calc.Constants().WriteTOML(cmd.OutOrStdout())
		},
	}
}
