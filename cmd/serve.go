package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tubescout/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard JSON API",
	Long: `Serve every view as a JSON endpoint under /api, with CSV, JSON and RSS
downloads, a health check and Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := loadService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := serveAddr
	if addr == "" {
		addr = svc.Config().Server.Addr
	}
	return web.NewServer(svc).Run(ctx, addr)
}
