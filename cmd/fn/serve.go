package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fntrack/fntrack/internal/config"
	"github.com/fntrack/fntrack/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only HTTP view of the tracker",
	Long: `Start the inspection API for dashboards and tooling. The API never
mutates records; all changes go through the CLI and merge through
version control. The address comes from --addr, fn.toml, or
~/.fn/config.toml, in that order.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")

		if addr == "" {
			cfg, err := config.ResolveConfig()
			if err != nil {
				handleError(err)
			}
			addr = fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		}

		tr, cleanup, err := openTracker()
		if err != nil {
			handleError(err)
		}
		defer cleanup()

		srv := server.New(addr, tr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			handleError(err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}
