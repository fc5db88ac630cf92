// Command qanalyse canonicalizes, routes and analyses quantum circuits written
// in OpenQASM.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"qanalyse/internal/analyse"
	"qanalyse/internal/arch"
	"qanalyse/internal/canon"
	"qanalyse/internal/circuit"
	"qanalyse/internal/config"
	"qanalyse/internal/logger"
)

var (
	canonConfigPath string
	logLevel        string
	archName        string
	qubits          int

	appConfig *config.Config
	canonCfg  canon.Config
	log       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qanalyse",
	Short: "Quantum circuit analyser",
	Long: `qanalyse canonicalizes parametrized quantum circuits, routes them onto
device architectures and reports their structural metrics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("config") {
			cfg.CanonConfig = canonConfigPath
		}
		if f := cmd.Flags().Lookup("arch"); f != nil && f.Changed {
			cfg.Architecture = archName
		}
		if f := cmd.Flags().Lookup("qubits"); f != nil && f.Changed {
			cfg.Qubits = qubits
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		appConfig = cfg
		log = logger.New(cfg.Logger())

		canonCfg = canon.Default()
		if cfg.CanonConfig != "" {
			if canonCfg, err = canon.Load(cfg.CanonConfig); err != nil {
				return err
			}
			log.Debug().Str("path", cfg.CanonConfig).Strs("passes", canonCfg.Enabled()).Msg("Loaded canonicalizer config")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&canonConfigPath, "config", "", "canonicalizer YAML file (default QANALYSE_CANON_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(archCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

// addArchFlags registers --arch and --qubits on cmd.
func addArchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&archName, "arch", "", "target architecture (default QANALYSE_ARCHITECTURE)")
	cmd.Flags().IntVar(&qubits, "qubits", 0, "qubit count for scalable architectures (default QANALYSE_QUBITS)")
}

// readCircuit parses the QASM file at path, or stdin for "-".
func readCircuit(cmd *cobra.Command, path string) (*circuit.Circuit, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	c, err := circuit.ParseQASM(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// analyserFor returns an analyser bound to the configured architecture. A
// scalable architecture without a qubit count is sized to c.
func analyserFor(c *circuit.Circuit) (*analyse.Analyser, error) {
	opts := []analyse.Option{analyse.WithConfig(canonCfg), analyse.WithLogger(log)}
	if name := appConfig.Architecture; name != "" {
		n := appConfig.Qubits
		if n == 0 && arch.Scalable(name) {
			n = max(c.Qubits(), 1)
		}
		a, err := arch.Select(name, n)
		if err != nil {
			return nil, err
		}
		opts = append(opts, analyse.WithArchitecture(a))
	}
	return analyse.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
