package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the uniportal command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "uniportal",
		Short:         "Administer the university portal backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newPasswdCmd(app),
		newNewsCmd(app),
		newFacultiesCmd(app),
		newDownloadsCmd(app),
		newAIHouseCmd(app),
		newIncubatorCmd(app),
		newAnalyticsCmd(app),
	)
	return root
}
