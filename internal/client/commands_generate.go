package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/pass-guard/internal/generator"
)

func (a *App) generateCommand() *cobra.Command {
	var (
		policy     = generator.DefaultPolicy()
		lookalikes bool
		passphrase bool
		words      int
		separator  string
		copyValue  bool
	)

	cmd := &cobra.Command{
		Use:         "generate",
		Aliases:     []string{"gen"},
		Short:       "Generate a random password or diceware passphrase",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var (
				value string
				err   error
			)
			if passphrase {
				value, err = generator.GeneratePassphrase(words, separator)
			} else {
				policy.ExcludeLookalikes = !lookalikes
				value, err = generator.Generate(policy)
			}
			if err != nil {
				return err
			}

			if copyValue {
				if err = a.copyToClipboard(out, value); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, value)
			}
			fmt.Fprintln(out, renderStrength(generator.Score(value)))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&policy.Length, "length", "l", generator.DefaultLength, "password length")
	f.BoolVar(&policy.IncludeLowercase, "lower", true, "include lowercase letters")
	f.BoolVar(&policy.IncludeUppercase, "upper", true, "include uppercase letters")
	f.BoolVar(&policy.IncludeNumbers, "digits", true, "include digits")
	f.BoolVar(&policy.IncludeSymbols, "symbols", true, "include symbols")
	f.BoolVar(&lookalikes, "lookalikes", false, "allow characters that look alike, such as 0 and O")
	f.BoolVar(&passphrase, "passphrase", false, "generate diceware words instead of characters")
	f.IntVarP(&words, "words", "w", generator.DefaultWords, "number of diceware words")
	f.StringVar(&separator, "separator", "-", "diceware word separator")
	f.BoolVar(&copyValue, "copy", false, "copy to the clipboard instead of printing")

	return cmd
}

func (a *App) scoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "score [password]",
		Short:       "Rate the strength of a password",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				if password, err = a.prompter.Secret("Password: "); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStrength(generator.Score(password)))
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show client and server versions",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offlineAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, a.buildInfo.String())

			serverVersion := "unavailable"
			if err := a.wire(cmd.Context()); err == nil && a.server != nil {
				if v, err := a.server.Version(cmd.Context()); err == nil {
					serverVersion = v
				} else {
					a.logger.Err(err).Msg("fetch server version")
				}
			}

			fmt.Fprintf(out, "Server version: %s\n", serverVersion)
			return nil
		},
	}
}
