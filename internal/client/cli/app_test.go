package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/backoffice/internal/client/config"
	"github.com/dmitrijs2005/backoffice/internal/client/session"
	"github.com/dmitrijs2005/backoffice/internal/client/storage"
	"github.com/dmitrijs2005/backoffice/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedToken(t *testing.T, dsn, token string) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, storage.NewTokenStore(storage.NewSQLiteRepository(db)).Save(ctx, token))
}

func storedToken(t *testing.T, dsn string) string {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	tok, err := storage.NewTokenStore(storage.NewSQLiteRepository(db)).Load(ctx)
	require.NoError(t, err)
	return tok
}

// profileServer answers /api/profile/ for the token "good" and 401 otherwise.
func profileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/profile/" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Token good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid token."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"alice","email":"a@x.com","first_name":"Alice","last_name":"Doe"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = baseURL + "/api"
	cfg.StorageDSN = filepath.Join(t.TempDir(), "bo.db")
	cfg.RequestTimeout = 2 * time.Second
	cfg.RehydrateTimeout = 2 * time.Second
	return cfg
}

func TestNewApp_InvalidBaseURL(t *testing.T) {
	cfg := testConfig(t, "")
	cfg.APIBaseURL = "ftp://nowhere"

	_, err := NewApp(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestRun_RestoresStoredSession(t *testing.T) {
	out := capturePrint(t)
	srv := profileServer(t)
	cfg := testConfig(t, srv.URL)
	seedToken(t, cfg.StorageDSN, "good")

	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))

	require.NoError(t, app.Run(context.Background()))

	id, ok := app.session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", id.Username)
	assert.Contains(t, *out, "Logged in as Alice Doe")
	assert.Contains(t, *out, "bo (alice)>")
	assert.Equal(t, "good", storedToken(t, cfg.StorageDSN))
}

func TestRun_ExpiredStoredSessionIsCleared(t *testing.T) {
	capturePrint(t)
	srv := profileServer(t)
	cfg := testConfig(t, srv.URL)
	seedToken(t, cfg.StorageDSN, "expired")

	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))

	require.NoError(t, app.Run(context.Background()))

	_, ok := app.session.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, session.StateAnonymous, app.session.State())
	assert.Empty(t, storedToken(t, cfg.StorageDSN))
}

func TestRun_NoStoredSessionRedirectsToLogin(t *testing.T) {
	out := capturePrint(t)
	stubInputs(t, []string{""}, []string{""})
	srv := profileServer(t)
	cfg := testConfig(t, srv.URL)

	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("dashboard\nexit\n"))

	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, session.StateAnonymous, app.session.State())
	assert.Contains(t, *out, "Please log in")
	assert.Contains(t, *out, "Username and password are required")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// officeServer is a minimal backend: the API root, login and empty lists.
type officeServer struct {
	mu        sync.Mutex
	pings     int
	loginUser string
}

func (s *officeServer) start(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/":
			s.mu.Lock()
			s.pings++
			s.mu.Unlock()
			_, _ = w.Write([]byte(`{}`))
		case "/api/login/":
			var creds struct {
				Username string `json:"username"`
			}
			_ = json.NewDecoder(r.Body).Decode(&creds)
			s.mu.Lock()
			s.loginUser = creds.Username
			s.mu.Unlock()
			_, _ = w.Write([]byte(`{"token":"t1","username":"` + creds.Username + `"}`))
		case "/api/agreements/", "/api/clients/", "/api/transactions/":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_PromptsReadFromCommandReader(t *testing.T) {
	out := capturePrint(t)
	origGP := getPassword
	getPassword = func(string, io.Writer) (string, error) { return "secret", nil }
	t.Cleanup(func() { getPassword = origGP })

	backend := &officeServer{}
	cfg := testConfig(t, backend.start(t).URL)

	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("login\nalice\nexit\n"))
	app.out = io.Discard

	require.NoError(t, app.Run(context.Background()))

	backend.mu.Lock()
	assert.Equal(t, "alice", backend.loginUser)
	backend.mu.Unlock()
	assert.NotContains(t, *out, "Unknown command: alice")
	assert.Contains(t, *out, "Welcome, alice")
	assert.Equal(t, "t1", storedToken(t, cfg.StorageDSN))
}

func TestRun_ChecksAPIConnection(t *testing.T) {
	capturePrint(t)
	backend := &officeServer{}
	cfg := testConfig(t, backend.start(t).URL)
	logs := &lockedBuffer{}

	app, err := NewApp(context.Background(), cfg, logging.New("info", logs))
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))

	require.NoError(t, app.Run(context.Background()))

	backend.mu.Lock()
	assert.Equal(t, 1, backend.pings)
	backend.mu.Unlock()
	assert.Contains(t, logs.String(), "using backend")
	assert.Contains(t, logs.String(), "api connection ok")
}

func TestRun_UnreachableAPIIsLoggedOnly(t *testing.T) {
	capturePrint(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	cfg := testConfig(t, srv.URL)
	logs := &lockedBuffer{}

	app, err := NewApp(context.Background(), cfg, logging.New("info", logs))
	require.NoError(t, err)
	app.reader = bufio.NewReader(strings.NewReader("exit\n"))

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, logs.String(), "api connection failed")
	assert.Equal(t, session.StateAnonymous, app.session.State())
}
