package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"qanalyse/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert a circuit to device commands and back",
	Long: `Convert the circuit in FILE ("-" for stdin) to the device representation,
print its commands and symbol table, then print the circuit converted back to
QASM.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		dc, vm, err := convert.ToDestination(c)
		if err != nil {
			return err
		}
		back, err := convert.FromDestination(dc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, dc.String())
		vars := make([]string, 0, len(vm))
		for v := range vm {
			vars = append(vars, v)
		}
		slices.Sort(vars)
		for _, v := range vars {
			fmt.Fprintf(out, "symbol %s -> %s\n", v, vm[v].Name())
		}
		fmt.Fprintln(out)
		_, err = fmt.Fprint(out, back.QASM())
		return err
	},
}
