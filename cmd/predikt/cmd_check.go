package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/load"
	"github.com/dekarrin/predikt/internal/predikterr"
	"github.com/dekarrin/predikt/internal/report"
	"github.com/dekarrin/predikt/internal/toolkit"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Load a grammar and report FIRST/FOLLOW, the LL(1) table, and its LL(1)/SLR(1) verdicts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, _, err := loadAndBuild(args[0])
			if err != nil {
				return err
			}
			printCheckReport(tk)
			return nil
		},
	}
	return cmd
}

// loadAndBuild reads the grammar file at path and runs the full analysis
// pipeline, returning the input strings queued up alongside it.
func loadAndBuild(path string) (*toolkit.Toolkit, []string, error) {
	f, err := load.FromPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s", predikterr.Display(err))
	}
	return toolkit.Build(f.Grammar), f.Inputs, nil
}

func printCheckReport(tk *toolkit.Toolkit) {
	fmt.Printf("grammar: %d productions, %d non-terminals, %d terminals\n",
		len(tk.Grammar.Productions()), len(tk.Grammar.NonTerminals()), len(tk.Grammar.Terminals()))
	fmt.Println(report.FirstFollowTable(tk.Grammar, tk.First, tk.Follow))
	fmt.Println(report.LL1Table(tk.Grammar, tk.LL1Table))
	fmt.Println(report.Verdicts(tk))
}
