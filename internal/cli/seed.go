package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ganot/dashview/internal/backend"
	"github.com/ganot/dashview/internal/domain/invoice"
	"github.com/ganot/dashview/internal/domain/order"
	"github.com/ganot/dashview/internal/domain/project"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fetch the authoritative collections from the backend and rewrite the mirrors",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := backend.NewClient(app.cfg.Backend.BaseURL,
				backend.WithTimeout(time.Duration(app.cfg.Backend.TimeoutSeconds)*time.Second))
			if err != nil {
				return err
			}
			return seed(cmd.Context(), app, client)
		},
	}
}

// seed fetches the three entity collections concurrently and rewrites
// their mirrors, publishing a change notification per entity.
func seed(ctx context.Context, app *App, client *backend.Client) error {
	var (
		projects []project.Project
		invoices []invoice.Invoice
		orders   []order.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projects, err = client.Projects(gctx)
		return err
	})
	g.Go(func() (err error) {
		invoices, err = client.Invoices(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = client.Orders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("seeding from backend: %w", err)
	}

	if err := writeMirror(ctx, app, project.MirrorKey, project.ChangeTopic, projects); err != nil {
		return err
	}
	if err := writeMirror(ctx, app, invoice.MirrorKey, invoice.ChangeTopic, invoices); err != nil {
		return err
	}
	if err := writeMirror(ctx, app, order.MirrorKey, order.ChangeTopic, orders); err != nil {
		return err
	}

	app.logger.Info("mirrors seeded",
		"projects", len(projects), "invoices", len(invoices), "orders", len(orders))
	return nil
}

func writeMirror[T any](ctx context.Context, app *App, key, topic string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s mirror: %w", key, err)
	}
	if err := app.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s mirror: %w", key, err)
	}
	app.bus.Publish(topic)
	return nil
}
