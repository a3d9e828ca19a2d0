package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uniportal.org/internal/content"
)

func newAnalyticsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Visitor analytics",
	}
	cmd.AddCommand(
		newAnalyticsDashboardCmd(app),
		newAnalyticsRealtimeCmd(app),
		newAnalyticsExportCmd(app),
		newAnalyticsTrackCmd(app),
	)
	return cmd
}

func newAnalyticsDashboardCmd(app *App) *cobra.Command {
	var timeRange string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the analytics overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			dash, err := app.analytics.GetDashboard(cmd.Context(), timeRange)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Visits:   %d (%+.1f%%)\n", dash.Overview.TotalVisits, dash.Overview.VisitsChange)
			fmt.Fprintf(out, "Visitors: %d (%+.1f%%)\n", dash.Overview.UniqueVisitors, dash.Overview.VisitorsChange)
			fmt.Fprintln(out, "Top pages:")
			for _, p := range dash.TopPages {
				fmt.Fprintf(out, "  %6d  %s\n", p.Views, p.Page)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&timeRange, "range", "7d", "time range (1d, 7d, 30d, 90d)")
	return cmd
}

func newAnalyticsRealtimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "realtime",
		Short: "Show live visitor stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			rt, err := app.analytics.GetRealTime(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Active users:        %d\n", rt.ActiveUsers)
			fmt.Fprintf(out, "Views last hour:     %d\n", rt.PageViewsLastHour)
			fmt.Fprintf(out, "New visitors today:  %d\n", rt.NewVisitorsToday)
			return nil
		},
	}
}

func newAnalyticsExportCmd(app *App) *cobra.Command {
	var timeRange, format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export analytics data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			data, err := app.analytics.Export(cmd.Context(), timeRange, format)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d bytes to %s\n", len(data), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&timeRange, "range", "30d", "time range (1d, 7d, 30d, 90d)")
	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (stdout when omitted)")
	return cmd
}

func newAnalyticsTrackCmd(app *App) *cobra.Command {
	var page, title string
	cmd := &cobra.Command{
		Use:    "track",
		Short:  "Record a page view (best effort)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.analytics.TrackPageView(cmd.Context(), content.PageView{
				Page:     page,
				Title:    title,
				Language: app.cfg.Language,
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&page, "page", "/", "page path")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	return cmd
}
