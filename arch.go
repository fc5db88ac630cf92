package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qanalyse/internal/arch"
)

var archCmd = &cobra.Command{
	Use:   "arch [NAME]",
	Short: "List the architecture catalog or describe one architecture",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tNODES\tEDGES")
			for _, name := range arch.Names() {
				if arch.Scalable(name) {
					fmt.Fprintf(tw, "%s\tany\tline\n", name)
					continue
				}
				a, err := arch.Select(name, 0)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\n", name, a.NodeCount(), len(a.Edges()))
			}
			return tw.Flush()
		}

		a, err := arch.Select(args[0], appConfig.Qubits)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "name:      %s\n", a.Name())
		fmt.Fprintf(out, "nodes:     %d\n", a.NodeCount())
		fmt.Fprintf(out, "connected: %t\n", a.Connected())
		maxDegree := 0
		for _, n := range a.Nodes() {
			maxDegree = max(maxDegree, a.Degree(n))
		}
		fmt.Fprintf(out, "degree:    %d\n", maxDegree)
		fmt.Fprintln(out, "edges:")
		for _, e := range a.Edges() {
			fmt.Fprintf(out, "  %d-%d\n", e[0], e[1])
		}
		return nil
	},
}

func init() {
	archCmd.Flags().IntVar(&qubits, "qubits", 0, "qubit count for scalable architectures")
}
