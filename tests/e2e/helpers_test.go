//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/plantracker/plantracker-backend/internal/adapter/emailverify"
	"github.com/plantracker/plantracker-backend/internal/adapter/postgres"
	activityrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/activity"
	tagrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/tag"
	"github.com/plantracker/plantracker-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/user"
	"github.com/plantracker/plantracker-backend/internal/adapter/telegram"
	authpkg "github.com/plantracker/plantracker-backend/internal/auth"
	"github.com/plantracker/plantracker-backend/internal/config"
	activitysvc "github.com/plantracker/plantracker-backend/internal/service/activity"
	tagsvc "github.com/plantracker/plantracker-backend/internal/service/tag"
	usersvc "github.com/plantracker/plantracker-backend/internal/service/user"
	"github.com/plantracker/plantracker-backend/internal/transport/middleware"
	"github.com/plantracker/plantracker-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	Telegram *telegramRecorder
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// telegramRecorder is a fake Telegram Bot API capturing sendMessage calls.
type telegramRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (tr *telegramRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		tr.mu.Lock()
		tr.messages = append(tr.messages, body.Text)
		tr.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})
}

// WaitForMessage blocks until at least n messages arrived or the timeout hits.
func (tr *telegramRecorder) WaitForMessage(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		tr.mu.Lock()
		got := len(tr.messages)
		msgs := append([]string(nil), tr.messages...)
		tr.mu.Unlock()
		if got >= n {
			return msgs
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d telegram messages", n)
	return nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	userRepo := userrepo.New(pool)
	activityRepo := activityrepo.New(pool)
	tagRepo := tagrepo.New(pool)

	recorder := &telegramRecorder{}
	botAPI := httptest.NewServer(recorder.handler())
	t.Cleanup(botAPI.Close)

	notifier := telegram.NewNotifierWithURL(botAPI.URL, "test-token", 5*time.Second, logger)

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		PasswordHashCost: bcrypt.MinCost,
		CheckEmailMX:     false,
	}
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	userService := usersvc.NewService(logger, userRepo, jwtMgr, emailverify.New(false), authCfg)
	activityService := activitysvc.NewService(logger, activityRepo, tagRepo, userRepo, notifier, txm)
	tagService := tagsvc.NewService(logger, tagRepo)

	mux := rest.NewRouter(
		rest.NewUserHandler(userService, logger),
		rest.NewActivityHandler(activityService, logger),
		rest.NewTagHandler(tagService, logger),
		rest.NewHealthHandler(pool, "test-version"),
	)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Auth(userService),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		Telegram: recorder,
	}
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	status, raw := ts.doRaw(t, method, path, token, body)

	var result map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result))
	}
	return status, result
}

func (ts *testServer) doList(t *testing.T, method, path, token string, body any) (int, []map[string]any) {
	t.Helper()

	status, raw := ts.doRaw(t, method, path, token, body)

	var result []map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result))
	}
	return status, result
}

func (ts *testServer) doRaw(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// registerAndLogin creates a fresh account through the API and returns its
// bearer token.
func registerAndLogin(t *testing.T, ts *testServer) string {
	t.Helper()

	email := fmt.Sprintf("user-%d@gopher.dev", time.Now().UnixNano())
	password := "strongpassword"

	status, _ := ts.do(t, http.MethodPost, "/users/", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := ts.do(t, http.MethodPost, "/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "bearer", body["token_type"])

	token, ok := body["access_token"].(string)
	require.True(t, ok, "expected access_token in login response")
	return token
}

// linkTelegram links a chat id for the authenticated user.
func linkTelegram(t *testing.T, ts *testServer, token, chatID string) {
	t.Helper()
	status, _ := ts.do(t, http.MethodPost, "/users/me/telegram", token, map[string]string{
		"chat_id": chatID,
	})
	require.Equal(t, http.StatusOK, status)
}
