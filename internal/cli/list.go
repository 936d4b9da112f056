package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganot/dashview/internal/listview"
)

type listFlags struct {
	status   string
	search   string
	from     string
	to       string
	sort     string
	page     int
	pageSize int
}

func addListFlags(cmd *cobra.Command, flags *listFlags) {
	cmd.Flags().StringVar(&flags.status, "status", listview.StatusAll, "filter by status")
	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive substring search")
	cmd.Flags().StringVar(&flags.from, "from", "", "earliest primary date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "latest primary date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort keys, e.g. start_date:desc,project_name")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page index")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", listview.DefaultPageSize, "page size")
}

// runList builds a view over the configured store, applies the flag state,
// and prints the visible slice.
func runList[T any](cmd *cobra.Command, app *App, desc listview.Descriptor[T], key, topic string, flags *listFlags, print func(io.Writer, []T)) error {
	ctx := cmd.Context()

	view, err := listview.New(ctx, listview.Config[T]{
		Descriptor: desc,
		Store:      app.store,
		Bus:        app.bus,
		Key:        key,
		Topic:      topic,
		PageSize:   flags.pageSize,
		Logger:     app.logger,
	})
	if err != nil {
		return err
	}

	opts := []listview.FilterOption{
		listview.WithStatus(flags.status),
		listview.WithSearch(flags.search),
	}
	from, err := parseDateFlag(flags.from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := parseDateFlag(flags.to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if from != nil || to != nil {
		opts = append(opts, listview.WithDateRange(from, to))
	}
	view.SetFilters(opts...)

	keys, err := parseSortFlag(flags.sort)
	if err != nil {
		return err
	}
	view.SetSorting(keys)
	view.SetPagination(listview.Page{Index: flags.page, Size: flags.pageSize})

	print(cmd.OutOrStdout(), view.Visible())
	fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d of %d records match)\n",
		flags.page+1, max(view.PageCount(), 1), len(view.Filtered()), view.Len())
	return nil
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseSortFlag turns "start_date:desc,project_name" into sort keys.
func parseSortFlag(s string) ([]listview.SortKey, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var keys []listview.SortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, dir, found := strings.Cut(part, ":")
		key := listview.SortKey{Key: name}
		if found {
			switch strings.ToLower(dir) {
			case "desc", "descending":
				key.Descending = true
			case "asc", "ascending":
			default:
				return nil, fmt.Errorf("invalid sort direction %q", dir)
			}
		}
		keys = append(keys, key)
	}
	return keys, nil
}
