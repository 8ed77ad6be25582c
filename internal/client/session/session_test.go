package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_TokenBeforeLogin(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	_, err := s.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestStore_SaveLoginAndClear(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	require.NoError(t, s.SaveLogin(ctx, "ann@example.com", "tok-1"))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	email, err := s.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)

	require.NoError(t, s.Clear(ctx))
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.SaveLogin(ctx, "bob@example.com", "tok-2"))
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	tok, err := reopened.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestStore_LogoutKeepsEmail(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{}, st)

	require.NoError(t, s.SaveLogin(ctx, "ann@example.com", "tok-1"))
	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Email: "ann@example.com", LoggedIn: true}, st)

	require.NoError(t, s.Logout(ctx))
	_, err = s.Token(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{Email: "ann@example.com"}, st)

	require.NoError(t, s.Clear(ctx))
	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Status{}, st)
}
