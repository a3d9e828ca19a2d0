// Package cli implements the uniportal admin command line. Commands talk to
// the backend through the shared api.Client pipeline and are gated by the
// same session and guard rules the web UI applies.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uniportal.org/internal/api"
	"uniportal.org/internal/audit"
	"uniportal.org/internal/authz"
	"uniportal.org/internal/config"
	"uniportal.org/internal/content"
	"uniportal.org/internal/guard"
	"uniportal.org/internal/obs"
	"uniportal.org/internal/session"
	"uniportal.org/internal/tokens"
)

// App wires configuration, the HTTP client, the session manager and the
// content services behind the command tree.
type App struct {
	cfg     config.Config
	client  *api.Client
	session *session.Manager
	audit   *audit.Trail

	news      *content.News
	faculties *content.Faculties
	downloads *content.Downloads
	aihouse   *content.AIHouse
	incubator *content.Incubator
	analytics *content.Analytics
}

// NewApp builds the application from environment configuration. Credentials
// persist in a file store so sessions survive between invocations.
func NewApp() (*App, error) {
	cfg := config.Load()
	if cfg.Debug {
		obs.SetDebug()
	}

	store := tokens.NewFileStore(cfg.CredentialsFile)
	client, err := api.New(cfg.APIBaseURL,
		api.WithTokenStore(store),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLanguage(cfg.Language),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		api.WithCSRFToken(cfg.CSRFToken),
	)
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(client.Auth(), store)
	return &App{
		cfg:     cfg,
		client:  client,
		session: mgr,
		audit: audit.New(func() string {
			if user := mgr.CurrentUser(); user != nil {
				return user.Username
			}
			return ""
		}),
		news:      content.NewNews(client),
		faculties: content.NewFaculties(client),
		downloads: content.NewDownloads(client),
		aihouse:   content.NewAIHouse(client),
		incubator: content.NewIncubator(client),
		analytics: content.NewAnalytics(client),
	}, nil
}

// require verifies the session before a protected command runs, applying the
// guard decision: unauthenticated users are told to log in, role mismatches
// are rejected without a login hint.
func (a *App) require(cmd *cobra.Command, requiredRole authz.Role) error {
	a.session.CheckAuthStatus(cmd.Context())
	decision := guard.Check(a.session, requiredRole, cmd.CommandPath())
	switch decision.Action {
	case guard.ActionAllow:
		return nil
	case guard.ActionRedirect:
		if decision.Target == guard.LoginRoute {
			return errors.New(`not logged in: run "uniportal login" first`)
		}
		return fmt.Errorf("your role does not allow %q", cmd.CommandPath())
	default:
		return errors.New("session check did not complete")
	}
}
