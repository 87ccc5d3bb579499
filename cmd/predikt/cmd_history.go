package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/store"
)

func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "List recently recorded grammar-analysis runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.HistoryDB == "" {
				return fmt.Errorf("no history database configured")
			}

			s, err := store.Open(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer s.Close()

			runs, err := s.ListRecent(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("list run history: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("no runs recorded")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %-28s  start=%-8s  %s\n",
					run.Created.Format("2006-01-02 15:04:05"), run.ID, run.StartSymbol, run.Verdict)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	return cmd
}
