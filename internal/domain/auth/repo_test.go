package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Spok95/gym-crm/internal/domain/auth"
	"github.com/Spok95/gym-crm/internal/registry"
)

func newAuthRepo(t *testing.T) *auth.Repo {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.New(log, registry.Options{
		Dir:   t.TempDir(),
		Units: []string{"unit1", "unit2"},
	})
	t.Cleanup(func() { _ = reg.Close() })

	repo, err := reg.Auth(context.Background())
	require.NoError(t, err)
	return repo
}

func TestAuthenticateOwner(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	u, err := repo.Authenticate(ctx, "owner", "owner123")
	require.NoError(t, err)
	require.Equal(t, auth.RoleOwner, u.Role)
	require.Equal(t, "owner", u.Username)
	require.Empty(t, u.Unit) // owner не привязан к подразделению

	logs, err := repo.Logins(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	_, err = repo.Authenticate(ctx, "owner", "owner123")
	require.NoError(t, err)
	logs, err = repo.Logins(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2) // ровно одна строка журнала на успешный вход
}

func TestAuthenticateWrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	_, err := repo.Authenticate(ctx, "owner", "wrong")
	require.ErrorIs(t, err, auth.ErrAuthFailure)

	// Неудачный вход журнал не пополняет.
	u, err := repo.Authenticate(ctx, "owner", "owner123")
	require.NoError(t, err)
	logs, err := repo.Logins(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	repo := newAuthRepo(t)
	_, err := repo.Authenticate(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, auth.ErrAuthFailure)
}

func TestAuthenticateUnitAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	u, err := repo.Authenticate(ctx, "unit1", "unit1")
	require.NoError(t, err)
	require.Equal(t, auth.RoleUnitAdmin, u.Role)
	require.Equal(t, "unit1", u.Unit)
	require.Equal(t, "Unit1 Admin", u.FullName)

	logs, err := repo.Logins(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "unit1", logs[0].UnitAccessed)
}

func TestAuthenticateRejectsMalformedCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	_, err := repo.DB().ExecContext(ctx, `UPDATE users SET created_at = 'not-a-date' WHERE username = 'owner'`)
	require.NoError(t, err)

	// Битая метка времени — ошибка с указанием поля, а не нулевое время молча.
	_, err = repo.Authenticate(ctx, "owner", "owner123")
	require.Error(t, err)
	require.NotErrorIs(t, err, auth.ErrAuthFailure)
	require.Contains(t, err.Error(), "created_at")
}

func TestLoginsRejectMalformedLoginTime(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	u, err := repo.Authenticate(ctx, "owner", "owner123")
	require.NoError(t, err)

	_, err = repo.DB().ExecContext(ctx, `UPDATE login_logs SET login_time = 'garbage'`)
	require.NoError(t, err)

	_, err = repo.Logins(ctx, u.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "login_time")
}

func TestEnsureUserKeepsExisting(t *testing.T) {
	ctx := context.Background()
	repo := newAuthRepo(t)

	// Повторный EnsureUser с другим паролем не перетирает учётку.
	require.NoError(t, repo.EnsureUser(ctx, "owner", "stolen", auth.RoleOwner, "", "Imposter"))

	u, err := repo.Authenticate(ctx, "owner", "owner123")
	require.NoError(t, err)
	require.Equal(t, "Gym Owner", u.FullName)

	_, err = repo.Authenticate(ctx, "owner", "stolen")
	require.ErrorIs(t, err, auth.ErrAuthFailure)
}
