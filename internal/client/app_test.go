package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/generator"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/mock"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/vault"
	"github.com/MKhiriev/pass-guard/models"
)

// scriptedPrompter answers prompts in order.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) next(label string) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt %q", label)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Secret(label string) (string, error) { return p.next(label) }
func (p *scriptedPrompter) Line(label string) (string, error)   { return p.next(label) }

type appFixture struct {
	app       *App
	auth      *mock.MockClientAuthService
	vault     *mock.MockClientVaultService
	server    *mock.MockServerAdapter
	prompter  *scriptedPrompter
	out       *bytes.Buffer
	clipboard []string
}

func newAppFixture(t *testing.T, answers ...string) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		auth:     mock.NewMockClientAuthService(ctrl),
		vault:    mock.NewMockClientVaultService(ctrl),
		server:   mock.NewMockServerAdapter(ctrl),
		prompter: &scriptedPrompter{answers: answers},
		out:      &bytes.Buffer{},
	}
	f.app = &App{
		auth:      f.auth,
		vault:     f.vault,
		server:    f.server,
		prompter:  f.prompter,
		clipboard: func(s string) error { f.clipboard = append(f.clipboard, s); return nil },
		out:       f.out,
		buildInfo: models.NewAppBuildInfo("v1.2.3", "2026-10-01", "abc123"),
		logger:    logger.Nop(),
	}
	return f
}

func (f *appFixture) run(args ...string) error {
	return f.app.Run(context.Background(), args)
}

func TestRegisterCommand(t *testing.T) {
	f := newAppFixture(t, "correct horse", "correct horse")
	f.auth.EXPECT().Register(gomock.Any(), "alice", "correct horse").Return(nil)

	require.NoError(t, f.run("register", "alice"))
	assert.Contains(t, f.out.String(), "Registered and logged in as alice.")
	assert.Len(t, f.prompter.asked, 2)
}

func TestRegisterCommand_PassphraseMismatch(t *testing.T) {
	f := newAppFixture(t, "correct horse", "correct hose")

	err := f.run("register", "alice")

	assert.ErrorIs(t, err, ErrPassphraseMismatch)
}

func TestRegisterCommand_LoginTaken(t *testing.T) {
	f := newAppFixture(t, "pw", "pw")
	f.auth.EXPECT().Register(gomock.Any(), "alice", "pw").Return(store.ErrLoginAlreadyExists)

	assert.ErrorIs(t, f.run("register", "alice"), store.ErrLoginAlreadyExists)
}

func TestRegisterCommand_RequiresLogin(t *testing.T) {
	f := newAppFixture(t)

	assert.Error(t, f.run("register"))
}

func TestLoginCommand(t *testing.T) {
	f := newAppFixture(t, "pw")
	f.auth.EXPECT().Login(gomock.Any(), "alice", "pw").Return(nil)

	require.NoError(t, f.run("login", "alice"))
	assert.Contains(t, f.out.String(), "Logged in as alice.")
}

func TestLoginCommand_WrongPassphrase(t *testing.T) {
	f := newAppFixture(t, "nope")
	f.auth.EXPECT().Login(gomock.Any(), "alice", "nope").Return(service.ErrWrongPassword)

	assert.ErrorIs(t, f.run("login", "alice"), service.ErrWrongPassword)
}

func TestLogoutCommand(t *testing.T) {
	f := newAppFixture(t)
	f.auth.EXPECT().Logout(gomock.Any()).Return(nil)

	require.NoError(t, f.run("logout"))
	assert.Contains(t, f.out.String(), "Logged out.")
}

func TestStatusCommand(t *testing.T) {
	t.Run("logged in", func(t *testing.T) {
		f := newAppFixture(t)
		f.auth.EXPECT().Session(gomock.Any()).Return(models.Session{
			Login:     "alice",
			KDF:       crypto.DefaultKDFParams(),
			CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		}, nil)

		require.NoError(t, f.run("status"))
		assert.Contains(t, f.out.String(), "Logged in as alice")
		assert.Contains(t, f.out.String(), models.KDFArgon2id)
	})

	t.Run("not logged in", func(t *testing.T) {
		f := newAppFixture(t)
		f.auth.EXPECT().Session(gomock.Any()).Return(models.Session{}, service.ErrNotLoggedIn)

		require.NoError(t, f.run("status"))
		assert.Contains(t, f.out.String(), "Not logged in.")
	})
}

func TestRekeyCommand(t *testing.T) {
	f := newAppFixture(t, "old", "new", "new")
	f.auth.EXPECT().Rekey(gomock.Any(), "old", "new").Return(3, nil)

	require.NoError(t, f.run("rekey"))
	assert.Contains(t, f.out.String(), "Re-encrypted 3 item(s)")
}

func TestRekeyCommand_Mismatch(t *testing.T) {
	f := newAppFixture(t, "old", "new", "newer")

	assert.ErrorIs(t, f.run("rekey"), ErrPassphraseMismatch)
}

func TestAddCommand_PromptedPassword(t *testing.T) {
	f := newAppFixture(t, "hunter2", "pw")
	f.vault.EXPECT().
		Add(gomock.Any(), "pw", models.VaultFields{
			Title:    "GitHub",
			Username: "alice",
			Password: "hunter2",
			URL:      "https://github.com",
		}).
		Return(models.VaultRecord{ItemID: "item-1", Title: "GitHub"}, nil)

	require.NoError(t, f.run("add", "--title", "GitHub", "-u", "alice", "--url", "https://github.com"))
	assert.Contains(t, f.out.String(), "Added GitHub (item-1).")
	assert.NotContains(t, f.out.String(), "hunter2")
	assert.Empty(t, f.clipboard)
}

func TestAddCommand_GeneratedAndCopied(t *testing.T) {
	f := newAppFixture(t, "pw")

	var stored models.VaultFields
	f.vault.EXPECT().
		Add(gomock.Any(), "pw", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fields models.VaultFields) (models.VaultRecord, error) {
			stored = fields
			return models.VaultRecord{ItemID: "item-2", Title: fields.Title}, nil
		})

	require.NoError(t, f.run("add", "-t", "Mail", "--generate", "--copy"))
	assert.Len(t, stored.Password, generator.DefaultLength)
	assert.Equal(t, []string{stored.Password}, f.clipboard)
	assert.Contains(t, f.out.String(), "Password copied to clipboard.")
}

func TestAddCommand_EmptyAnswerGenerates(t *testing.T) {
	f := newAppFixture(t, "", "pw")
	f.vault.EXPECT().
		Add(gomock.Any(), "pw", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fields models.VaultFields) (models.VaultRecord, error) {
			assert.Len(t, fields.Password, generator.DefaultLength)
			return models.VaultRecord{ItemID: "item-3"}, nil
		})

	require.NoError(t, f.run("add", "-t", "Mail"))
}

func TestAddCommand_RequiresTitle(t *testing.T) {
	f := newAppFixture(t)

	assert.ErrorIs(t, f.run("add", "--title", "  "), ErrTitleRequired)
	assert.Empty(t, f.prompter.asked)
}

func TestGetCommand(t *testing.T) {
	fields := models.VaultFields{Title: "GitHub", Username: "alice", Password: "hunter2", Notes: "2fa on"}

	t.Run("password hidden by default", func(t *testing.T) {
		f := newAppFixture(t, "pw")
		f.vault.EXPECT().Get(gomock.Any(), "pw", "item-1").Return(fields, nil)

		require.NoError(t, f.run("get", "item-1"))
		assert.Contains(t, f.out.String(), "GitHub")
		assert.Contains(t, f.out.String(), "2fa on")
		assert.Contains(t, f.out.String(), hiddenPassword)
		assert.NotContains(t, f.out.String(), "hunter2")
	})

	t.Run("show", func(t *testing.T) {
		f := newAppFixture(t, "pw")
		f.vault.EXPECT().Get(gomock.Any(), "pw", "item-1").Return(fields, nil)

		require.NoError(t, f.run("get", "item-1", "--show"))
		assert.Contains(t, f.out.String(), "hunter2")
	})

	t.Run("copy", func(t *testing.T) {
		f := newAppFixture(t, "pw")
		f.vault.EXPECT().Get(gomock.Any(), "pw", "item-1").Return(fields, nil)

		require.NoError(t, f.run("get", "item-1", "--copy"))
		assert.Equal(t, []string{"hunter2"}, f.clipboard)
	})
}

func TestGetCommand_CannotRead(t *testing.T) {
	f := newAppFixture(t, "wrong")
	f.vault.EXPECT().
		Get(gomock.Any(), "wrong", "item-1").
		Return(models.VaultFields{}, errors.Join(vault.ErrCannotReadItem, crypto.ErrDecryptionFailed))

	err := f.run("get", "item-1")

	require.ErrorIs(t, err, vault.ErrCannotReadItem)
	assert.Equal(t, vault.ErrCannotReadItem.Error(), err.Error())
}

func TestGetCommand_ClipboardFailure(t *testing.T) {
	f := newAppFixture(t, "pw")
	f.app.clipboard = func(string) error { return errors.New("no display") }
	f.vault.EXPECT().Get(gomock.Any(), "pw", "item-1").Return(models.VaultFields{Password: "x"}, nil)

	err := f.run("get", "item-1", "--copy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy to clipboard")
}

func TestListCommand(t *testing.T) {
	updated := time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC)

	f := newAppFixture(t)
	f.vault.EXPECT().List(gomock.Any(), "git").Return([]models.VaultRecord{
		{ItemID: "item-1", Title: "GitHub", Username: "alice", URL: "https://github.com", UpdatedAt: &updated},
		{ItemID: "item-2", Title: "GitLab", Username: "al"},
	}, nil)

	require.NoError(t, f.run("list", "--search", "git"))

	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[1], "GitHub")
	assert.Contains(t, lines[1], "https://github.com")
	assert.Contains(t, lines[2], "item-2")
}

func TestListCommand_Empty(t *testing.T) {
	f := newAppFixture(t)
	f.vault.EXPECT().List(gomock.Any(), "").Return(nil, nil)

	require.NoError(t, f.run("ls"))
	assert.Contains(t, f.out.String(), "No items found.")
}

func TestListCommand_NotLoggedIn(t *testing.T) {
	f := newAppFixture(t)
	f.vault.EXPECT().List(gomock.Any(), "").Return(nil, service.ErrNotLoggedIn)

	assert.ErrorIs(t, f.run("list"), service.ErrNotLoggedIn)
}

func TestEditCommand_OnlyChangedFields(t *testing.T) {
	f := newAppFixture(t, "pw")

	current := models.VaultFields{Title: "GitHub", Username: "alice", Password: "hunter2", URL: "https://github.com", Notes: "old"}
	f.vault.EXPECT().
		Edit(gomock.Any(), "pw", "item-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, id string, edit func(*models.VaultFields)) (models.VaultRecord, error) {
			edit(&current)
			return models.VaultRecord{ItemID: id, Title: current.Title}, nil
		})

	require.NoError(t, f.run("edit", "item-1", "--username", "bob", "--notes", ""))

	assert.Equal(t, models.VaultFields{
		Title:    "GitHub",
		Username: "bob",
		Password: "hunter2",
		URL:      "https://github.com",
	}, current)
	assert.Contains(t, f.out.String(), "Updated GitHub (item-1).")
}

func TestEditCommand_NewPassword(t *testing.T) {
	f := newAppFixture(t, "s3cret!", "pw")

	current := models.VaultFields{Title: "GitHub", Password: "hunter2"}
	f.vault.EXPECT().
		Edit(gomock.Any(), "pw", "item-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, id string, edit func(*models.VaultFields)) (models.VaultRecord, error) {
			edit(&current)
			return models.VaultRecord{ItemID: id, Title: current.Title}, nil
		})

	require.NoError(t, f.run("edit", "item-1", "--password"))
	assert.Equal(t, "s3cret!", current.Password)
}

func TestEditCommand_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no changes", args: []string{"edit", "item-1"}, want: ErrNoChanges},
		{name: "blank title", args: []string{"edit", "item-1", "--title", ""}, want: ErrTitleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppFixture(t)

			assert.ErrorIs(t, f.run(tt.args...), tt.want)
			assert.Empty(t, f.prompter.asked)
		})
	}
}

func TestRemoveCommand(t *testing.T) {
	f := newAppFixture(t)
	f.vault.EXPECT().Remove(gomock.Any(), "item-1").Return(nil)

	require.NoError(t, f.run("rm", "item-1"))
	assert.Contains(t, f.out.String(), "Removed item-1.")
}

func TestRemoveCommand_NotFound(t *testing.T) {
	f := newAppFixture(t)
	f.vault.EXPECT().Remove(gomock.Any(), "item-9").Return(store.ErrVaultItemNotFound)

	assert.ErrorIs(t, f.run("remove", "item-9"), store.ErrVaultItemNotFound)
}

func TestNeedsServices(t *testing.T) {
	f := newAppFixture(t)
	root := f.app.rootCommand()

	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"list"}, want: true},
		{args: []string{"rekey"}, want: true},
		{args: []string{"generate"}, want: false},
		{args: []string{"score"}, want: false},
		{args: []string{"version"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			cmd, _, err := root.Find(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, needsServices(cmd))
		})
	}
}
