// Command predikt builds LL(1) and SLR(1) parsers from a context-free
// grammar and uses them to accept or reject input strings. Grounded on
// dhamidi-sai's cmd/ahi, a small cobra binary that wraps a single family of
// grammar tools (there, EBNF; here, LL(1)/SLR(1) table construction).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/logging"
)

func main() {
	var cfgPath string
	var verbosity int
	var logPath string
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:           "predikt",
		Short:         "Build and test LL(1)/SLR(1) parsers from a grammar file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Configure(verbosity, logPath); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			loaded := config.Default()
			if cfgPath != "" {
				var err error
				loaded, err = config.Load(cfgPath)
				if err != nil {
					return err
				}
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a predikt TOML config file (optional)")
	rootCmd.PersistentFlags().IntVar(&verbosity, "verbosity", 1, "log verbosity (0 disables logging)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "log file path (stderr if empty)")

	rootCmd.AddCommand(newCheckCmd(&cfg))
	rootCmd.AddCommand(newRunCmd(&cfg))
	rootCmd.AddCommand(newReplCmd(&cfg))
	rootCmd.AddCommand(newServeCmd(&cfg))
	rootCmd.AddCommand(newHistoryCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
