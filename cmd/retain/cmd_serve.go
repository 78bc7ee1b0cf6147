package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dialectlab/retain/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port      int
		resDir    string
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the results dashboard and REST API",
		Long: `Start a local HTTP server over the stored run results.

The server exposes a REST API (/api/runs, /api/summary, ...) and
HTML reports at /report/{run-id}. It binds to loopback only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := webserver.New(webserver.Config{
				Port:       port,
				ResultsDir: resDir,
				NoBrowser:  noBrowser,
				Logger:     slog.Default(),
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 3000, "Port to listen on")
	cmd.Flags().StringVar(&resDir, "results-dir", "results", "Directory of stored run results")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser window")
	return cmd
}
