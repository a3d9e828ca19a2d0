package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uniportal.org/internal/content"
)

func newNewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Browse and manage news articles",
	}
	cmd.AddCommand(
		newNewsListCmd(app),
		newNewsShowCmd(app),
		newNewsLatestCmd(app),
		newNewsCreateCmd(app),
		newNewsDeleteCmd(app),
		newNewsUploadImageCmd(app),
	)
	return cmd
}

func newNewsListCmd(app *App) *cobra.Command {
	var filter content.NewsFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.news.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tCREATED")
			for _, a := range page.News {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Category, a.Title, a.CreatedAt)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d articles)\n", page.Page, page.Pages, page.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&filter.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filter.PerPage, "per-page", 0, "articles per page")
	cmd.Flags().StringVar(&filter.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filter.Search, "search", "", "full text search")
	return cmd
}

func newNewsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			article, err := app.news.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", article.Title)
			if article.Summary != "" {
				fmt.Fprintf(out, "%s\n\n", article.Summary)
			}
			fmt.Fprintln(out, article.Content)
			fmt.Fprintf(out, "\ncategory: %s  author: %s  published: %s\n",
				article.Category, article.AuthorName, article.CreatedAt)
			return nil
		},
	}
}

func newNewsLatestCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			articles, err := app.news.Latest(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, a := range articles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s\n", a.CreatedAt, a.Category, a.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "number of articles")
	return cmd
}

func newNewsCreateCmd(app *App) *cobra.Command {
	var in content.ArticleInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new article",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			id, err := app.news.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			app.audit.Record("news.created", zap.String("article_id", id), zap.String("title", in.Title))
			fmt.Fprintf(cmd.OutOrStdout(), "Created article %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "article title")
	cmd.Flags().StringVar(&in.Content, "content", "", "article body")
	cmd.Flags().StringVar(&in.Summary, "summary", "", "short summary")
	cmd.Flags().StringVar(&in.Category, "category", "", "article category")
	cmd.Flags().BoolVar(&in.Featured, "featured", false, "feature on the front page")
	cmd.Flags().BoolVar(&in.Published, "published", true, "publish immediately")
	cmd.Flags().StringVar(&in.ImageURL, "image-url", "", "header image URL")
	cobra.CheckErr(cmd.MarkFlagRequired("title"))
	cobra.CheckErr(cmd.MarkFlagRequired("content"))
	cobra.CheckErr(cmd.MarkFlagRequired("category"))
	return cmd
}

func newNewsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			if err := app.news.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.audit.Record("news.deleted", zap.String("article_id", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted article %s\n", args[0])
			return nil
		},
	}
}

func newNewsUploadImageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <file>",
		Short: "Upload an article image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			url, err := app.news.UploadImage(cmd.Context(), filepath.Base(args[0]), data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
