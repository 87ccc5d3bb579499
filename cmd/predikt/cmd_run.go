package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/report"
	"github.com/dekarrin/predikt/internal/store"
	"github.com/dekarrin/predikt/internal/toolkit"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	var methodFlag string

	cmd := &cobra.Command{
		Use:           "run <file>",
		Short:         "Check a grammar, then recognize every input string queued up in its file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, inputs, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			printCheckReport(tk)

			if len(inputs) == 0 {
				fmt.Println("no input strings in grammar file")
				return nil
			}

			if !tk.IsLL1() && !tk.IsSLR1() {
				fmt.Println("grammar is neither LL(1) nor SLR(1); input strings skipped")
				recordHistory(cfg, tk)
				return nil
			}

			method, err := resolveMethod(methodFlag, cfg.DefaultMethod, tk)
			if err != nil {
				return err
			}

			entries := tk.RecognizeBatch(method, inputs)
			fmt.Println(report.BatchSummary(method, entries))

			recordHistory(cfg, tk)
			return nil
		},
	}

	cmd.Flags().StringVar(&methodFlag, "method", "", "which recognizer to use: ll1, slr1 (default: config default_method)")
	return cmd
}

// resolveMethod picks the recognizer for a batch run: an explicit --method
// flag wins, otherwise the configured default, falling back to whichever of
// LL(1)/SLR(1) the grammar actually supports when the default doesn't apply.
func resolveMethod(flagValue string, defaultMethod config.Method, tk *toolkit.Toolkit) (toolkit.Method, error) {
	chosen := string(defaultMethod)
	if flagValue != "" {
		chosen = flagValue
	}
	fromDefault := flagValue == ""

	switch chosen {
	case "ll1":
		if !tk.IsLL1() {
			if fromDefault && tk.IsSLR1() {
				return toolkit.SLR1, nil
			}
			return 0, fmt.Errorf("grammar is not LL(1)")
		}
		return toolkit.LL1, nil
	case "slr1":
		if !tk.IsSLR1() {
			if fromDefault && tk.IsLL1() {
				return toolkit.LL1, nil
			}
			return 0, fmt.Errorf("grammar is not SLR(1)")
		}
		return toolkit.SLR1, nil
	case "both", "":
		switch {
		case tk.IsLL1():
			return toolkit.LL1, nil
		case tk.IsSLR1():
			return toolkit.SLR1, nil
		default:
			return 0, fmt.Errorf("grammar is neither LL(1) nor SLR(1); no recognizer available")
		}
	default:
		return 0, fmt.Errorf("unknown method %q: expected ll1, slr1, or both", chosen)
	}
}

// recordHistory persists tk's run to the configured history database,
// logging a warning rather than failing the command if it can't.
func recordHistory(cfg *config.Config, tk *toolkit.Toolkit) {
	if cfg.HistoryDB == "" {
		return
	}
	s, err := store.Open(cfg.HistoryDB)
	if err != nil {
		fmt.Printf("warning: could not open history database: %v\n", err)
		return
	}
	defer s.Close()

	if _, err := s.Record(context.Background(), tk); err != nil {
		fmt.Printf("warning: could not record run history: %v\n", err)
	}
}
