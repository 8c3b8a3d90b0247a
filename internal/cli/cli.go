// Package cli wires the cobra command tree: list, facets, fetch, report
// and presets.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rematierra/internal/config"
	"rematierra/internal/logger"
)

var (
	flagVerbose bool
	flagDataDir string
	flagConfig  string

	// cfg is loaded once in the root PersistentPreRunE.
	cfg config.Config
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rematierra",
		Short: "Consulta, filtra y publica remates judiciales chilenos",
		Long: `rematierra arma un dataset de remates judiciales chilenos desde las
fuentes públicas (Boletín Concursal, Bienes Nacionales) o desde un archivo
JSON local, y lo filtra y presenta como texto, tabla, JSON o un informe
HTML autónomo.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(flagVerbose); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}

			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagDataDir != "" {
				cfg.DataDir = flagDataDir
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for presets (default ~/.local/share/rematierra)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a JSON5 config file")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newFacetsCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newPresetsCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
