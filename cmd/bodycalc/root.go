package main

import (
	"github.com/spf13/cobra"

	"github.com/yusufkecer/body-composition-backend/internal/bodycomp"
)

func newRootCmd() *cobra.Command {
	var constantsFile string

	root := &cobra.Command{
		Use:           "bodycalc",
		Short:         "Body composition calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&constantsFile, "constants", "", "TOML file overriding the calculator constants")

	loadCalculator := func() (*bodycomp.Calculator, error) {
		if constantsFile == "" {
			return bodycomp.NewCalculator(bodycomp.DefaultConstants()), nil
		}
		c, err := bodycomp.LoadConstants(constantsFile)
		if err != nil {
			return nil, err
		}
		return bodycomp.NewCalculator(c), nil
	}

	root.AddCommand(newComputeCmd(loadCalculator), newConstantsCmd(loadCalculator))
	return root
}
