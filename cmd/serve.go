package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/StevenPG/scribe/internal/log"
	"github.com/StevenPG/scribe/internal/server"
	"github.com/StevenPG/scribe/internal/site"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on changes",
	Long: `The serve command performs an initial build, starts a local preview
server for the output directory, and watches the content, layouts, and static
directories, rebuilding the site whenever they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.WithComponent("serve")

		builder := site.New(cfg)
		if err := builder.Build(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watchDirs := []string{cfg.ContentDir, cfg.LayoutsDir, cfg.StaticDir}
		go func() {
			err := server.Watch(ctx, watchDirs, func() {
				logger.Info().Msg("rebuilding site due to changes")
				if err := builder.Build(); err != nil {
					logger.Error().Err(err).Msg("rebuild failed")
					return
				}
				logger.Info().Msg("site rebuilt")
			})
			if err != nil {
				logger.Error().Err(err).Msg("file watcher stopped")
			}
		}()

		return server.New(cfg.OutputDir).ListenAndServe(ctx, serverPort)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
