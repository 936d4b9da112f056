package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganot/dashview/internal/config"
	"github.com/ganot/dashview/internal/domain/invoice"
	"github.com/ganot/dashview/internal/domain/order"
	"github.com/ganot/dashview/internal/domain/project"
	"github.com/ganot/dashview/internal/notify"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Log change notifications for mirrors rewritten by other processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.Storage.Driver != config.DriverFile {
				return fmt.Errorf("watch requires the %q storage driver", config.DriverFile)
			}

			topics := map[string]string{
				project.MirrorKey: project.ChangeTopic,
				invoice.MirrorKey: invoice.ChangeTopic,
				order.MirrorKey:   order.ChangeTopic,
			}
			for _, topic := range topics {
				cancel := app.bus.Subscribe(topic, func() {
					app.logger.Info("mirror changed", "topic", topic)
				})
				defer cancel()
			}

			watcher := notify.NewWatcher(app.fileDir, app.bus, topics, notify.WithLogger(app.logger))
			if err := watcher.Start(cmd.Context()); err != nil {
				return fmt.Errorf("starting watcher: %w", err)
			}
			defer watcher.Close()

			app.logger.Info("watching mirrors", "dir", app.fileDir)
			<-cmd.Context().Done()
			return nil
		},
	}
}
