package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bodygraph-backend/internal/astro"
	"bodygraph-backend/pkg/api"
)

func newGatesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "gates [number]",
		Short: "Print the 64-gate wheel, or one gate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wheel, err := astro.NewWheel()
			if err != nil {
				return err
			}

			gates := wheel.Gates()
			if len(args) == 1 {
				number, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("gate number must be an integer: %q", args[0])
				}
				def, ok := wheel.Gate(number)
				if !ok {
					return fmt.Errorf("no such gate: %d", number)
				}
				gates = []astro.GateDefinition{def}
			}

			resp := api.NewGatesResponse(gates)
			if asJSON {
				data, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			for _, g := range resp.Gates {
				fmt.Fprintf(cmd.OutOrStdout(), "gate %2d  %-12s %s -> %s  (pairs with %v)\n",
					g.Gate, g.Center, g.Start, g.End, g.Complements)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")
	return cmd
}
