package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bodygraph",
		Short:         "Compute bodygraph charts from birth data",
		Long:          "bodygraph maps planetary positions at birth and at 88 solar degrees before birth onto the 64-gate wheel.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChartCmd())
	root.AddCommand(newGatesCmd())
	return root
}
