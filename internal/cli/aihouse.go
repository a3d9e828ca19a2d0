package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAIHouseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai-house",
		Short: "Browse AI house projects and events",
	}

	projects := &cobra.Command{
		Use:   "projects",
		Short: "List AI projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.aihouse.Projects(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tLEAD")
			for _, p := range page.Projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.Status, p.CreatorName)
			}
			return w.Flush()
		},
	}

	events := &cobra.Command{
		Use:   "events",
		Short: "List upcoming AI events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.aihouse.Events(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTITLE\tLOCATION")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.EventDate, e.Title, e.Location)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(projects, events)
	return cmd
}
