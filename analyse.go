package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verbose bool

var analyseCmd = &cobra.Command{
	Use:     "analyse FILE",
	Aliases: []string{"analyze"},
	Short:   "Report the metrics of a canonicalized, optionally routed circuit",
	Long: `Canonicalize the circuit in FILE ("-" for stdin), route it onto --arch when
given and print its qubit count, depth, gate count, parameter count and gate
arity histogram.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		a, err := analyserFor(c)
		if err != nil {
			return err
		}
		if verbose {
			return a.Info(cmd.OutOrStdout(), c)
		}

		r, err := a.Analyse(c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), r.String())
		return err
	},
}

func init() {
	addArchFlags(analyseCmd)
	analyseCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the full gate histogram")
}
