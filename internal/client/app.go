// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/pass-guard/internal/adapter"
	"github.com/MKhiriev/pass-guard/internal/config"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/vault"
	"github.com/MKhiriev/pass-guard/models"
)

// offlineAnnotation marks commands that run without a session store or
// server connection.
const offlineAnnotation = "offline"

// App is the pass-guard CLI. Services are wired lazily from
// [config.GetClientConfig] before the first command that needs them.
type App struct {
	auth   service.ClientAuthService
	vault  service.ClientVaultService
	server adapter.ServerAdapter

	prompter  Prompter
	clipboard func(string) error
	out       io.Writer
	buildInfo models.AppBuildInfo
	logger    *logger.Logger

	flags   config.ClientConfig
	closers []func() error
}

// NewApp returns a CLI reading from stdin and writing to stdout.
func NewApp(buildInfo models.AppBuildInfo) *App {
	return &App{
		prompter:  newTermPrompter(os.Stdin, os.Stdout),
		clipboard: clipboard.WriteAll,
		out:       os.Stdout,
		buildInfo: buildInfo,
		logger:    logger.Nop(),
	}
}

// Run executes the command described by args.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.logger.Err(err).Msg("command failed")
	}
	return userError(err)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pass-guard",
		Short:         "Zero-knowledge password manager client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsServices(cmd) {
				return nil
			}
			if err := a.wire(cmd.Context()); err != nil {
				return err
			}
			cmd.SetContext(a.logger.WithContext(cmd.Context()))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.ServerAddress, "server", "s", "", "server base URL")
	pf.DurationVar(&a.flags.RequestTimeout, "timeout", 0, "timeout of each server request")
	pf.StringVar(&a.flags.SessionDSN, "session", "", "path to the local session database")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "path to the client log file")
	pf.StringVarP(&a.flags.JSONFilePath, "config", "c", "", "path to a JSON config file")
	pf.StringVar(&a.flags.KDFAlgorithm, "kdf", "", "key derivation for new keys: argon2id or pbkdf2-sha256")
	pf.Uint32Var(&a.flags.KDFTime, "kdf-time", 0, "argon2id passes or pbkdf2 iterations for new keys")
	pf.Uint32Var(&a.flags.KDFMemoryKiB, "kdf-memory", 0, "argon2id memory in KiB for new keys")
	pf.Uint8Var(&a.flags.KDFThreads, "kdf-threads", 0, "argon2id parallelism for new keys")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.rekeyCommand(),
		a.addCommand(),
		a.getCommand(),
		a.listCommand(),
		a.editCommand(),
		a.removeCommand(),
		a.generateCommand(),
		a.scoreCommand(),
		a.versionCommand(),
	)

	return root
}

// needsServices reports whether cmd talks to the session store or server.
// Help and shell completion never do.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[offlineAnnotation] != "" || c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// wire builds the services from configuration unless they were injected.
func (a *App) wire(ctx context.Context) error {
	if a.auth != nil && a.vault != nil {
		return nil
	}

	cfg, err := config.GetClientConfig(&a.flags)
	if err != nil {
		return fmt.Errorf("load client config: %w", err)
	}

	a.logger = logger.NewClientLogger("client", cfg.LogFile)

	storages, err := store.NewClientStorages(ctx, cfg.SessionDSN, a.logger)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	a.closers = append(a.closers, storages.Close)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.ServerAddress, cfg.RequestTimeout, a.logger)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	deriver, err := crypto.NewKeyDeriver(cfg.KDFParams())
	if err != nil {
		return fmt.Errorf("configure key derivation: %w", err)
	}

	services := service.NewClientServices(storages.SessionRepository, serverAdapter, deriver, a.logger)
	a.auth = services.AuthService
	a.vault = services.VaultService
	a.server = serverAdapter

	return nil
}

func (a *App) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Err(err).Msg("close client resource")
		}
	}
	a.closers = nil
}

// askPassphrase prompts for the master passphrase once.
func (a *App) askPassphrase() (string, error) {
	return a.prompter.Secret("Master passphrase: ")
}

// askNewPassphrase prompts for a new passphrase twice and requires both
// entries to match.
func (a *App) askNewPassphrase(label string) (string, error) {
	first, err := a.prompter.Secret(label + ": ")
	if err != nil {
		return "", err
	}
	second, err := a.prompter.Secret("Repeat " + label + ": ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPassphraseMismatch
	}
	return first, nil
}

// userError trims joined error chains down to the message meant for the
// terminal.
func userError(err error) error {
	if errors.Is(err, vault.ErrCannotReadItem) {
		return vault.ErrCannotReadItem
	}
	return err
}
