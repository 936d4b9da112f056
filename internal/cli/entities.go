package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganot/dashview/internal/domain/invoice"
	"github.com/ganot/dashview/internal/domain/order"
	"github.com/ganot/dashview/internal/domain/project"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project list views",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the visible project slice",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, project.Descriptor(), project.MirrorKey, project.ChangeTopic, &flags, printProjects)
		},
	}
	addListFlags(list, &flags)
	cmd.AddCommand(list)
	return cmd
}

func newInvoicesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Invoice list views",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the visible invoice slice",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, invoice.Descriptor(), invoice.MirrorKey, invoice.ChangeTopic, &flags, printInvoices)
		},
	}
	addListFlags(list, &flags)
	cmd.AddCommand(list)
	return cmd
}

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order list views",
	}

	var flags listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the visible order slice",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, order.Descriptor(), order.MirrorKey, order.ChangeTopic, &flags, printOrders)
		},
	}
	addListFlags(list, &flags)
	cmd.AddCommand(list)
	return cmd
}

func printProjects(w io.Writer, projects []project.Project) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tNAME\tCUSTOMER\tSTATUS\tSTART\tBUDGET")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			p.ProjectNumber, p.ProjectName, p.CustomerName, p.Status,
			p.StartDate.Format("2006-01-02"), p.Budget)
	}
	tw.Flush()
}

func printInvoices(w io.Writer, invoices []invoice.Invoice) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tSTATUS\tISSUED\tDUE\tAMOUNT")
	for _, inv := range invoices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			inv.InvoiceNumber, inv.CustomerName, inv.Status,
			inv.IssueDate.Format("2006-01-02"), formatOptionalDate(inv.DueDate), inv.Amount)
	}
	tw.Flush()
}

func printOrders(w io.Writer, orders []order.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tCUSTOMER\tSTATUS\tPLACED\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n",
			o.OrderNumber, o.CustomerName, o.Status,
			o.OrderDate.Format("2006-01-02"), o.TotalAmount)
	}
	tw.Flush()
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
