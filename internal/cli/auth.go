package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uniportal.org/internal/api"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the portal backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			res := app.session.Login(cmd.Context(), api.Credentials{Username: username, Password: password})
			if !res.Success {
				app.audit.Record("login.failed", zap.String("username", username))
				return errors.New(res.Error)
			}
			app.audit.Record("login.succeeded")
			user := app.session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.audit.Record("logout")
			app.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			user := app.session.CurrentUser()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:    %s (%s)\n", user.Username, user.Name)
			fmt.Fprintf(out, "Email:   %s\n", user.Email)
			fmt.Fprintf(out, "Role:    %s\n", user.Role)
			if user.CollegeName != "" {
				fmt.Fprintf(out, "College: %s\n", user.CollegeName)
			}
			if user.FacultyName != "" {
				fmt.Fprintf(out, "Faculty: %s\n", user.FacultyName)
			}
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the current user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			if name == "" && email == "" {
				return errors.New("nothing to update: pass --name or --email")
			}
			res := app.session.UpdateProfile(cmd.Context(), api.ProfileUpdate{Name: name, Email: email})
			if !res.Success {
				return errors.New(res.Error)
			}
			app.audit.Record("profile.updated")
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	return cmd
}

func newPasswdCmd(app *App) *cobra.Command {
	var current, next string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the current user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.require(cmd, ""); err != nil {
				return err
			}
			if current == "" || next == "" {
				return errors.New("both --current and --new are required")
			}
			res := app.session.ChangePassword(cmd.Context(), api.PasswordChange{
				CurrentPassword: current,
				NewPassword:     next,
			})
			if !res.Success {
				return errors.New(res.Error)
			}
			app.audit.Record("password.changed")
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "current password")
	cmd.Flags().StringVar(&next, "new", "", "new password")
	return cmd
}
