package cmd

import (
	"fmt"

	"github.com/kerbaras/fitguide/pkg/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and exercise media over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		c, cfg, logger := openCatalog()
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		ctx, stop := signalContext()
		defer stop()

		fmt.Printf("🌐 Listening on %s (media from %s)\n", addr, cfg.AssetDir)
		srv := server.New(c, cfg.AssetDir, logger)
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default FITGUIDE_LISTEN_ADDR or :8080)")

	rootCmd.AddCommand(serveCmd)
}
