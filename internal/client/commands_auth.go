package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/pass-guard/internal/service"
)

func (a *App) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register <login>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login := strings.TrimSpace(args[0])

			passphrase, err := a.askNewPassphrase("Master passphrase")
			if err != nil {
				return err
			}

			if err = a.auth.Register(cmd.Context(), login, passphrase); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s.\n", login)
			return nil
		},
	}
}

func (a *App) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <login>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login := strings.TrimSpace(args[0])

			passphrase, err := a.askPassphrase()
			if err != nil {
				return err
			}

			if err = a.auth.Login(cmd.Context(), login, passphrase); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", login)
			return nil
		},
	}
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *App) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			sess, err := a.auth.Session(cmd.Context())
			if errors.Is(err, service.ErrNotLoggedIn) {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Logged in as %s since %s\n", sess.Login, sess.CreatedAt.Local().Format(time.DateTime))
			fmt.Fprintln(out, faintStyle.Render("Key derivation: "+sess.KDF.Algorithm))
			return nil
		},
	}
}

func (a *App) rekeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rekey",
		Short: "Change the master passphrase and re-encrypt every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPassphrase, err := a.prompter.Secret("Current master passphrase: ")
			if err != nil {
				return err
			}
			newPassphrase, err := a.askNewPassphrase("New master passphrase")
			if err != nil {
				return err
			}

			count, err := a.auth.Rekey(cmd.Context(), oldPassphrase, newPassphrase)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Re-encrypted %d item(s) under the new passphrase.\n", count)
			return nil
		},
	}
}
