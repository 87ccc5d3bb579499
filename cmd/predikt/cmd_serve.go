package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dekarrin/predikt/internal/config"
	"github.com/dekarrin/predikt/internal/httpapi"
	"github.com/dekarrin/predikt/internal/logging"
	"github.com/dekarrin/predikt/internal/store"
)

var serveLog = logging.For("serve")

func newServeCmd(cfg *config.Config) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the grammar-loading and recognition HTTP API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bind := cfg.Server.Bind
			if bindFlag != "" {
				bind = bindFlag
			}

			secret := cfg.Server.JWTSecret
			if secret == "" {
				return fmt.Errorf("server.jwt_secret must be set in the config file to run predikt serve")
			}

			var history *store.Store
			if cfg.HistoryDB != "" {
				s, err := store.Open(cfg.HistoryDB)
				if err != nil {
					return fmt.Errorf("open history database: %w", err)
				}
				defer s.Close()
				history = s
			}

			ttl := tokenTTL(cfg.Server.TokenTTLMs)
			srv := httpapi.NewServer([]byte(secret), ttl, history)

			serveLog.Infof("predikt serving on %s", bind)
			return http.ListenAndServe(bind, srv)
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "address to listen on (default: config server.bind)")
	return cmd
}

func tokenTTL(ms int64) time.Duration {
	if ms <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(ms) * time.Millisecond
}
