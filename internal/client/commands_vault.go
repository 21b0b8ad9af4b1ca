package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/pass-guard/internal/generator"
	"github.com/MKhiriev/pass-guard/models"
)

const hiddenPassword = "********"

func (a *App) addCommand() *cobra.Command {
	var (
		fields   models.VaultFields
		generate bool
		copyPass bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if strings.TrimSpace(fields.Title) == "" {
				return ErrTitleRequired
			}

			password, err := a.itemPassword(generate)
			if err != nil {
				return err
			}
			fields.Password = password

			passphrase, err := a.askPassphrase()
			if err != nil {
				return err
			}

			record, err := a.vault.Add(cmd.Context(), passphrase, fields)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Added %s (%s).\n", record.Title, record.ItemID)
			fmt.Fprintln(out, renderStrength(generator.Score(password)))
			if copyPass {
				return a.copyToClipboard(out, password)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&fields.Title, "title", "t", "", "item title")
	f.StringVarP(&fields.Username, "username", "u", "", "account username")
	f.StringVar(&fields.URL, "url", "", "site URL")
	f.StringVar(&fields.Notes, "notes", "", "free-form notes")
	f.BoolVarP(&generate, "generate", "g", false, "generate the password instead of prompting")
	f.BoolVar(&copyPass, "copy", false, "copy the password to the clipboard")

	return cmd
}

func (a *App) getCommand() *cobra.Command {
	var show, copyPass bool

	cmd := &cobra.Command{
		Use:   "get <item-id>",
		Short: "Decrypt and show an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			passphrase, err := a.askPassphrase()
			if err != nil {
				return err
			}

			fields, err := a.vault.Get(cmd.Context(), passphrase, args[0])
			if err != nil {
				return err
			}

			password := hiddenPassword
			if show {
				password = fields.Password
			}

			printField(out, "Title", fields.Title)
			printField(out, "Username", fields.Username)
			printField(out, "Password", password)
			printField(out, "URL", fields.URL)
			printField(out, "Notes", fields.Notes)

			if copyPass {
				return a.copyToClipboard(out, fields.Password)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the password in clear text")
	cmd.Flags().BoolVar(&copyPass, "copy", false, "copy the password to the clipboard")

	return cmd
}

func (a *App) listCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault items by their searchable fields",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			records, err := a.vault.List(cmd.Context(), search)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No items found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tURL\tUPDATED")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ItemID, r.Title, r.Username, r.URL, formatTime(r.UpdatedAt))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "match title, username or URL")

	return cmd
}

func (a *App) editCommand() *cobra.Command {
	var (
		changes  models.VaultFields
		password bool
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			changed := func(name string) bool { return f.Changed(name) }

			if !changed("title") && !changed("username") && !changed("url") && !changed("notes") && !password && !generate {
				return ErrNoChanges
			}
			if changed("title") && strings.TrimSpace(changes.Title) == "" {
				return ErrTitleRequired
			}

			var newPassword string
			if password || generate {
				var err error
				if newPassword, err = a.itemPassword(generate); err != nil {
					return err
				}
			}

			passphrase, err := a.askPassphrase()
			if err != nil {
				return err
			}

			record, err := a.vault.Edit(cmd.Context(), passphrase, args[0], func(fields *models.VaultFields) {
				if changed("title") {
					fields.Title = changes.Title
				}
				if changed("username") {
					fields.Username = changes.Username
				}
				if changed("url") {
					fields.URL = changes.URL
				}
				if changed("notes") {
					fields.Notes = changes.Notes
				}
				if password || generate {
					fields.Password = newPassword
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s).\n", record.Title, record.ItemID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&changes.Title, "title", "t", "", "new title")
	f.StringVarP(&changes.Username, "username", "u", "", "new username")
	f.StringVar(&changes.URL, "url", "", "new URL")
	f.StringVar(&changes.Notes, "notes", "", "new notes")
	f.BoolVarP(&password, "password", "p", false, "prompt for a new password")
	f.BoolVarP(&generate, "generate", "g", false, "replace the password with a generated one")

	return cmd
}

func (a *App) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.vault.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
			return nil
		},
	}
}

// itemPassword generates a password with the default policy, or prompts for
// one and generates when the answer is empty.
func (a *App) itemPassword(generate bool) (string, error) {
	if !generate {
		password, err := a.prompter.Secret("Item password (empty to generate): ")
		if err != nil {
			return "", err
		}
		if password != "" {
			return password, nil
		}
	}

	return generator.Generate(generator.DefaultPolicy())
}

func (a *App) copyToClipboard(out io.Writer, value string) error {
	if err := a.clipboard(value); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	fmt.Fprintln(out, "Password copied to clipboard.")
	return nil
}

func printField(out io.Writer, name, value string) {
	if value == "" {
		value = faintStyle.Render("-")
	}
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render(name+":"), value)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
