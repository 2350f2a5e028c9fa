package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// passwordFlag binds --password with a SHELF_PASSWORD fallback.
func passwordFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVarP(p, "password", "p", os.Getenv("SHELF_PASSWORD"), "Account password (or $SHELF_PASSWORD)")
}

func newRegisterCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.store.Register(args[0], args[1], password)
			if err != nil {
				return err
			}
			role := "reader"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("Welcome,"), u.Username, role)
			return nil
		},
	}
	passwordFlag(cmd, &password)
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.store.Login(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Logged in as"), u.Username)
			return nil
		},
	}
	passwordFlag(cmd, &password)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.currentUser()
			if err != nil {
				return err
			}
			admin := ""
			if u.IsAdmin {
				admin = tagStyle.Render(" [admin]")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>%s\n", u.Username, u.Email, admin)
			return nil
		},
	}
}
