package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bus-route/pkg/config"
	"bus-route/pkg/content"
	"bus-route/pkg/server"
)

// newServeCmd creates a new command for serving the site
func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the web server to serve the static site and the content document,
reloading connected browsers when the content or public files change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serveWebsite(ctx, cfg, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload browsers when files change")
	return cmd
}

// serveWebsite runs the web server until ctx is done
func serveWebsite(ctx context.Context, cfg *config.Config, watch bool) error {
	source, err := content.NewSource(cfg.ServeContent)
	if err != nil {
		return err
	}

	srv := server.New(cfg.PublicDir, source, logger)
	if watch {
		if err := srv.Watch(ctx, cfg.PublicDir, cfg.ServeContent); err != nil {
			logger.Warn("Live reload disabled", zap.Error(err))
		}
	}

	cfg.PrintServerStartMessage()
	return srv.Run(ctx, cfg.ServerAddress())
}
