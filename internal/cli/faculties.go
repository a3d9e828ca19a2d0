package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFacultiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faculties",
		Short: "Browse faculties and departments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List faculties",
		RunE: func(cmd *cobra.Command, args []string) error {
			faculties, err := app.faculties.List(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEAN\tDEPARTMENTS")
			for _, f := range faculties {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", f.ID, f.Name, f.Dean, f.DepartmentCount)
			}
			return w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one faculty with its departments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			faculty, err := app.faculties.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", faculty.Name)
			if faculty.Description != "" {
				fmt.Fprintf(out, "%s\n", faculty.Description)
			}
			if faculty.Dean != "" {
				fmt.Fprintf(out, "Dean: %s\n", faculty.Dean)
			}
			for _, d := range faculty.Departments {
				fmt.Fprintf(out, "  - %s\n", d.Name)
			}
			return nil
		},
	}

	departments := &cobra.Command{
		Use:   "departments <faculty-id>",
		Short: "List a faculty's departments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.faculties.Departments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPROGRAMS")
			for _, d := range deps {
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Name, d.ProgramCount)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(list, show, departments)
	return cmd
}
