package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"qanalyse/internal/device"
)

var errNoArchitecture = errors.New("no architecture: pass --arch or set QANALYSE_ARCHITECTURE")

var routeCmd = &cobra.Command{
	Use:   "route FILE",
	Short: "Route a circuit onto a device architecture",
	Long: `Canonicalize the circuit in FILE ("-" for stdin), route it onto --arch and
print the routed circuit as QASM, preceded by the swap count and the initial and
final placements.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Architecture == "" {
			return errNoArchitecture
		}
		c, err := readCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		a, err := analyserFor(c)
		if err != nil {
			return err
		}
		routed, err := a.Route(c, a.Architecture())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "// architecture: %s\n", a.Architecture().Name())
		fmt.Fprintf(out, "// swaps: %d\n", routed.Swaps)
		fmt.Fprintf(out, "// placement: %s\n", formatPlacement(routed.Placement))
		fmt.Fprintf(out, "// final: %s\n", formatPlacement(routed.Final))
		fmt.Fprintf(out, "// nodes: %s\n", formatNodes(routed.Nodes))
		_, err = fmt.Fprint(out, routed.Circuit.QASM())
		return err
	},
}

// formatPlacement lists logical->node pairs in logical order.
func formatPlacement(p device.Placement) string {
	logical := make([]int, 0, len(p))
	for q := range p {
		logical = append(logical, q)
	}
	slices.Sort(logical)
	s := ""
	for i, q := range logical {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d->%d", q, p[q])
	}
	return s
}

func formatNodes(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

func init() {
	addArchFlags(routeCmd)
}
