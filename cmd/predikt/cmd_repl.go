package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/repl"
	"github.com/dekarrin/predikt/internal/toolkit"
)

func newReplCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repl <file>",
		Short:         "Load a grammar, then interactively test input lines against it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, _, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			printCheckReport(tk)

			if !tk.IsLL1() && !tk.IsSLR1() {
				fmt.Println("grammar is neither LL(1) nor SLR(1); no recognizer available")
				recordHistory(cfg, tk)
				return nil
			}

			chooser, err := repl.New()
			if err != nil {
				return fmt.Errorf("start interactive session: %w", err)
			}
			defer chooser.Close()

			method, err := chooseMethod(tk, chooser)
			if err != nil {
				return err
			}

			if err := chooser.RunLines(tk, method); err != nil && !errors.Is(err, io.EOF) {
				return err
			}

			recordHistory(cfg, tk)
			return nil
		},
	}
	return cmd
}

// chooseMethod prompts the operator only when the grammar supports both
// recognizers; otherwise it picks the one the grammar supports, matching the
// original's behavior of only asking when there's a real choice to make.
func chooseMethod(tk *toolkit.Toolkit, chooser *repl.Chooser) (toolkit.Method, error) {
	switch {
	case tk.IsLL1() && tk.IsSLR1():
		return chooser.ChooseMethod()
	case tk.IsLL1():
		return toolkit.LL1, nil
	case tk.IsSLR1():
		return toolkit.SLR1, nil
	default:
		return 0, fmt.Errorf("grammar is neither LL(1) nor SLR(1); no recognizer available")
	}
}
