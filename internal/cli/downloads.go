package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"uniportal.org/internal/content"
)

func newDownloadsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "downloads",
		Short: "Browse and fetch public files",
	}
	cmd.AddCommand(
		newDownloadsListCmd(app),
		newDownloadsGetCmd(app),
		newDownloadsStatsCmd(app),
	)
	return cmd
}

func newDownloadsListCmd(app *App) *cobra.Command {
	var filter content.FileFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List public files",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.downloads.Files(cmd.Context(), filter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tCATEGORY\tFACULTY\tDOWNLOADS")
			for _, f := range page.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					f.ID, f.OriginalFilename, f.Category, f.FacultyName, f.DownloadCount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d files)\n", page.Page, page.Pages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "full text search")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.FacultyID, "faculty", "", "filter by faculty id")
	cmd.Flags().IntVar(&filter.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filter.PerPage, "per-page", 0, "files per page")
	return cmd
}

func newDownloadsGetCmd(app *App) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <file-id>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.downloads.Download(cmd.Context(), args[0])
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
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (stdout when omitted)")
	return cmd
}

func newDownloadsStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show download statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.downloads.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files:     %d\n", stats.TotalFiles)
			fmt.Fprintf(out, "Downloads: %d\n", stats.TotalDownloads)
			for category, count := range stats.ByCategory {
				fmt.Fprintf(out, "  %s: %d\n", category, count)
			}
			return nil
		},
	}
}
