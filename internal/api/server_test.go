package api

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/shelfpostapp/shelfpost-server/internal/auth"
	"github.com/shelfpostapp/shelfpost-server/internal/config"
	"github.com/shelfpostapp/shelfpost-server/internal/service"
	"github.com/shelfpostapp/shelfpost-server/internal/store/sqlite"
)

// testEnvelope mirrors the response envelope with typed data.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

type testServer struct {
	*Server
	api humatest.TestAPI
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:       service.NewAuthService(st, tokenService, logger),
		Users:      service.NewUserService(st, logger),
		Reviews:    service.NewReviewService(st, nil, logger),
		Feed:       service.NewFeedService(st, logger),
		Engagement: service.NewEngagementService(st, logger),
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name:        "ShelfPost Test",
			CORSOrigins: []string{"*"},
		},
	}

	server := NewServer(st, services, cfg, logger)

	return &testServer{
		Server: server,
		api:    humatest.Wrap(t, server.api),
	}
}

// registerUser creates a user through the API and returns its token and ID.
func (ts *testServer) registerUser(t *testing.T, handle string) (token, userID string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"handle":   handle,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.AccessToken)

	return envelope.Data.AccessToken, envelope.Data.User.ID
}

// createReview publishes a review through the API and returns its ID.
func (ts *testServer) createReview(t *testing.T, token string, body map[string]any) string {
	t.Helper()

	if _, ok := body["title"]; !ok {
		body["title"] = "The Left Hand of Darkness"
	}
	if _, ok := body["body"]; !ok {
		body["body"] = "A quiet, devastating book about trust."
	}

	resp := ts.api.Post("/api/v1/reviews", bearer(token), body)
	require.Equal(t, http.StatusOK, resp.Code, "create review failed: %s", resp.Body.String())

	var envelope testEnvelope[ReviewResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()

	var envelope testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}
