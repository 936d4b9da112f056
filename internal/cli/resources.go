package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ganot/dashview/internal/domain/resource"
	"github.com/ganot/dashview/internal/sqlite"
)

func newResourcesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Outsourcing resource pool and project allocations",
	}

	svc := func() (*resource.Service, error) {
		if err := app.openDB(app.cfg.Storage.Path); err != nil {
			return nil, err
		}
		return resource.NewService(sqlite.NewResourceRepository(app.db), app.logger), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the pool with derived available hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			resources, err := service.ListResources(cmd.Context())
			if err != nil {
				return err
			}
			printResources(cmd.OutOrStdout(), resources)
			return nil
		},
	})

	var name, company string
	var hours int
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a resource to the pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			res, err := service.CreateResource(cmd.Context(), resource.CreateResourceRequest{
				ResourceName: name,
				CompanyName:  company,
				TotalHours:   hours,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created resource %s\n", res.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "resource name")
	add.Flags().StringVar(&company, "company", "", "company name")
	add.Flags().IntVar(&hours, "hours", 0, "total pool hours")
	cmd.AddCommand(add)

	var projectID, resourceID string
	var allocHours int
	assign := &cobra.Command{
		Use:   "assign",
		Short: "Reserve resource hours for a project (not deducted until activation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			alloc, err := service.Assign(cmd.Context(), resource.AssignRequest{
				ProjectID:  projectID,
				ResourceID: resourceID,
				Hours:      allocHours,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created allocation %s\n", alloc.ID)
			return nil
		},
	}
	assign.Flags().StringVar(&projectID, "project", "", "project id")
	assign.Flags().StringVar(&resourceID, "resource", "", "resource id")
	assign.Flags().IntVar(&allocHours, "hours", 0, "hours to reserve")
	cmd.AddCommand(assign)

	var activateProject string
	activate := &cobra.Command{
		Use:   "activate",
		Short: "Commit a project's reserved hours (project entered execution)",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			n, err := service.Activate(cmd.Context(), activateProject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "activated %d allocations\n", n)
			return nil
		},
	}
	activate.Flags().StringVar(&activateProject, "project", "", "project id")
	cmd.AddCommand(activate)

	var deactivateProject string
	deactivate := &cobra.Command{
		Use:   "deactivate",
		Short: "Return a project's committed hours to the pool (project left execution)",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			n, err := service.Deactivate(cmd.Context(), deactivateProject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d allocations\n", n)
			return nil
		},
	}
	deactivate.Flags().StringVar(&deactivateProject, "project", "", "project id")
	cmd.AddCommand(deactivate)

	var releaseID string
	release := &cobra.Command{
		Use:   "release",
		Short: "Drop an allocation, returning any committed hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			if err := service.Release(cmd.Context(), releaseID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "released")
			return nil
		},
	}
	release.Flags().StringVar(&releaseID, "id", "", "allocation id")
	cmd.AddCommand(release)

	var listProject string
	allocations := &cobra.Command{
		Use:   "allocations",
		Short: "List a project's allocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := svc()
			if err != nil {
				return err
			}
			allocs, err := service.ListProjectAllocations(cmd.Context(), listProject)
			if err != nil {
				return err
			}
			printAllocations(cmd.OutOrStdout(), allocs)
			return nil
		},
	}
	allocations.Flags().StringVar(&listProject, "project", "", "project id")
	cmd.AddCommand(allocations)

	return cmd
}

func printResources(w io.Writer, resources []resource.Resource) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tTOTAL\tAVAILABLE")
	for _, res := range resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			res.ID, res.ResourceName, res.CompanyName, res.TotalHours, res.AvailableHours)
	}
	tw.Flush()
}

func printAllocations(w io.Writer, allocs []resource.Allocation) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRESOURCE\tHOURS\tCOMMITTED")
	for _, alloc := range allocs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n",
			alloc.ID, alloc.ResourceID, alloc.AllocatedHours, alloc.HoursCommitted)
	}
	tw.Flush()
}
