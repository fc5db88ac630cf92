package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qanalyse/internal/tui"
)

var savePath string

var tuiCmd = &cobra.Command{
	Use:   "tui [FILE]",
	Short: "Edit a circuit interactively and watch its analysis",
	Long: `Open the terminal editor on FILE, or on a blank four qubit circuit. The
circuit is saved with ctrl+s to --out, which defaults to FILE.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.Options{
			Canon:        canonCfg,
			Log:          zerolog.Nop(), // the editor owns the terminal
			Path:         savePath,
			Architecture: appConfig.Architecture,
		}
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts.Source = string(data)
			if opts.Path == "" {
				opts.Path = args[0]
			}
		}
		return tui.Run(opts)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&archName, "arch", "", "initial architecture (default QANALYSE_ARCHITECTURE)")
	tuiCmd.Flags().StringVarP(&savePath, "out", "o", "", "file written by ctrl+s (default FILE or circuit.qasm)")
}
