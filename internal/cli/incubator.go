package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newIncubatorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incubator",
		Short: "Browse incubator startups and programs",
	}

	startups := &cobra.Command{
		Use:   "startups",
		Short: "List startups",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.incubator.Startups(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tSTAGE\tFOUNDER")
			for _, s := range page.Startups {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Industry, s.Stage, s.FounderName)
			}
			return w.Flush()
		},
	}

	programs := &cobra.Command{
		Use:   "programs",
		Short: "List incubator programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			programs, err := app.incubator.Programs(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDURATION\tSTATUS")
			for _, p := range programs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Duration, p.Status)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(startups, programs)
	return cmd
}
