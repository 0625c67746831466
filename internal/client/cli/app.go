package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/backoffice/internal/client/api"
	"github.com/dmitrijs2005/backoffice/internal/client/config"
	"github.com/dmitrijs2005/backoffice/internal/client/gateway"
	"github.com/dmitrijs2005/backoffice/internal/client/guard"
	"github.com/dmitrijs2005/backoffice/internal/client/models"
	"github.com/dmitrijs2005/backoffice/internal/client/services"
	"github.com/dmitrijs2005/backoffice/internal/client/session"
	"github.com/dmitrijs2005/backoffice/internal/client/storage"
	"github.com/dmitrijs2005/backoffice/internal/logging"
)

// sessionStore is the part of *session.Store the App talks to directly.
type sessionStore interface {
	Initialize(ctx context.Context) <-chan struct{}
	Wait(ctx context.Context) error
	LastError() error
	CurrentUser() (identity models.Identity, ok bool)
	State() session.State
	Close()
}

const defaultRequestTimeout = 15 * time.Second

type App struct {
	config        *config.Config
	log           logging.Logger
	db            *sql.DB
	session       sessionStore
	guard         *guard.Guard
	authService   services.AuthService
	officeService services.BackOfficeService
	reader        *bufio.Reader
	out           io.Writer
}

// NewApp opens local storage and wires gateway, API client, session store
// and services. The session store is the only holder of the token; the
// gateway reads it through the credentials decorator on every request.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	db, err := storage.Open(ctx, c.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	tokens := storage.NewTokenStore(storage.NewSQLiteRepository(db))

	// the store and the gateway need each other: the gateway reads the token
	// from the store, the store fetches the profile through the gateway
	var store *session.Store
	gw, err := gateway.New(c.APIBaseURL,
		gateway.WithTimeout(c.RequestTimeout),
		gateway.WithLogger(log),
		gateway.WithCredentials(gateway.TokenFunc(func() string { return store.Token() })),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info(ctx, "using backend", "url", gw.BaseURL())

	apiClient := api.NewClient(gw)
	store = session.NewStore(tokens, apiClient, log, session.WithRehydrateTimeout(c.RehydrateTimeout))

	return &App{
		config:        c,
		log:           log,
		db:            db,
		session:       store,
		guard:         guard.New(store),
		authService:   services.NewAuthService(apiClient, store, log),
		officeService: services.NewBackOfficeService(apiClient, store),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

// Run restores the previous session, then serves the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.checkConnection(ctx)
	a.restoreSession(ctx)

	printlnFn("Welcome to the agency back office (type 'help' for commands)")
	if id, ok := a.session.CurrentUser(); ok {
		printlnFn("Logged in as", id.DisplayName())
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// checkConnection pings the API root once. The result is only logged; an
// unreachable backend does not stop the client.
func (a *App) checkConnection(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, a.requestTimeout())
	defer cancel()
	if err := a.authService.Ping(pctx); err != nil {
		a.log.Warn(ctx, "api connection failed", "err", err)
		return
	}
	a.log.Info(ctx, "api connection ok")
}

// restoreSession starts rehydration and waits for it a little longer than
// the store's own bound, so a slow backend cannot hold the prompt forever.
func (a *App) restoreSession(ctx context.Context) {
	a.session.Initialize(ctx)

	wctx, cancel := context.WithTimeout(ctx, a.rehydrateTimeout()+a.requestTimeout())
	defer cancel()
	if err := a.session.Wait(wctx); err != nil {
		a.log.Warn(ctx, "session restore still running, continuing without it")
		return
	}
	a.log.Debug(ctx, "session restore finished", "state", a.session.State().String(), "err", a.session.LastError())
}

func (a *App) requestTimeout() time.Duration {
	if a.config.RequestTimeout > 0 {
		return a.config.RequestTimeout
	}
	return defaultRequestTimeout
}

func (a *App) rehydrateTimeout() time.Duration {
	if a.config.RehydrateTimeout > 0 {
		return a.config.RehydrateTimeout
	}
	return session.DefaultRehydrateTimeout
}

// Close stops a running rehydration and releases local storage.
func (a *App) Close() error {
	if a.session != nil {
		a.session.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) status() string {
	if id, ok := a.session.CurrentUser(); ok {
		return id.Username
	}
	if a.session.State() == session.StatePending {
		return "restoring"
	}
	return "anonymous"
}

func (a *App) Resolve(name string) (guard.Route, error) {
	return a.guard.Resolve(name)
}

// describe turns a service error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyField), errors.Is(err, models.ErrPasswordMismatch):
		return err.Error()
	case errors.Is(err, gateway.ErrUnauthorized):
		return "Not authorized, please log in again"
	case errors.Is(err, gateway.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, gateway.ErrNotFound):
		return "Not found"
	case errors.Is(err, gateway.ErrBadRequest):
		var se *gateway.StatusError
		if errors.As(err, &se) && len(se.Body) > 0 {
			return "Rejected by server: " + string(se.Body)
		}
		return "Rejected by server"
	default:
		return "Error: " + err.Error()
	}
}

// fail reports err to the user and the log and returns it.
func (a *App) fail(ctx context.Context, action string, err error) error {
	a.log.Debug(ctx, action+" failed", "err", err)
	printlnFn(describe(err))
	return err
}
