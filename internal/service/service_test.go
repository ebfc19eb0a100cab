package service

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfpostapp/shelfpost-server/internal/auth"
	"github.com/shelfpostapp/shelfpost-server/internal/domain"
	"github.com/shelfpostapp/shelfpost-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func newTestAuthService(t *testing.T, st *sqlite.Store) *AuthService {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	return NewAuthService(st, tokens, testLogger())
}

// registerTestUser creates a user directly through the auth service and
// returns the sanitized user from the response.
func registerTestUser(t *testing.T, authSvc *AuthService, handle string) *domain.User {
	t.Helper()

	resp, err := authSvc.Register(context.Background(), RegisterRequest{
		Handle:   handle,
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)
	return resp.User
}
