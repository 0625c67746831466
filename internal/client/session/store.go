// Package session owns "who is logged in" for the lifetime of the client
// process: the in-memory token and identity, and the persisted copy of the
// token. Nothing else reads or writes either of them directly.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/backoffice/internal/client/gateway"
	"github.com/dmitrijs2005/backoffice/internal/client/models"
	"github.com/dmitrijs2005/backoffice/internal/logging"
)

// ErrNoToken is returned by Login when the login result carries no token.
var ErrNoToken = errors.New("login result has no token")

// DefaultRehydrateTimeout bounds the startup profile fetch.
const DefaultRehydrateTimeout = 10 * time.Second

// TokenStore is the durable home of the session token.
type TokenStore interface {
	// Load returns "" when nothing is persisted.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// ProfileFetcher fetches the identity for the token currently held by the
// Store (the gateway reads it back through Token).
type ProfileFetcher interface {
	Profile(ctx context.Context) (models.Identity, error)
}

type Option func(*Store)

// WithRehydrateTimeout bounds the startup profile fetch; expiry counts as a
// failed rehydration. Zero disables the bound.
func WithRehydrateTimeout(d time.Duration) Option {
	return func(s *Store) { s.rehydrateTimeout = d }
}

// Store is the single source of truth for the current session. It is safe
// for concurrent use.
//
// Every Login and Logout bumps a generation counter and cancels a running
// rehydration. A rehydration result is applied only if no Login or Logout
// happened since it started, so a slow startup fetch can never overwrite a
// session the user has just changed.
type Store struct {
	// persistMu orders writes to the TokenStore the same way as the
	// in-memory updates made under mu.
	persistMu sync.Mutex

	mu       sync.RWMutex
	state    State
	token    string
	identity models.Identity
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	lastErr  error

	tokens           TokenStore
	profiles         ProfileFetcher
	log              logging.Logger
	rehydrateTimeout time.Duration
}

func NewStore(tokens TokenStore, profiles ProfileFetcher, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{
		state:            StatePending,
		tokens:           tokens,
		profiles:         profiles,
		log:              log.With("component", "session"),
		rehydrateTimeout: DefaultRehydrateTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the session from the persisted token. It never blocks
// on the network: with no persisted token the session becomes anonymous and
// the returned channel is already closed; otherwise the token is installed
// provisionally, the state stays pending and the profile fetch runs in the
// background. The channel closes once the outcome is applied (or discarded).
//
// Only the first call does anything; later calls return the same channel.
// If Login or Logout already ran, there is nothing to restore.
func (s *Store) Initialize(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	if s.done != nil {
		d := s.done
		s.mu.Unlock()
		return d
	}
	done := make(chan struct{})
	s.done = done
	if s.state != StatePending {
		s.mu.Unlock()
		close(done)
		return done
	}
	gen := s.gen
	s.mu.Unlock()

	tok, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted token", "err", err)
		tok = ""
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		close(done)
		return done
	}
	if tok == "" {
		s.state = StateAnonymous
		s.mu.Unlock()
		close(done)
		return done
	}

	s.token = tok
	var (
		rctx   context.Context
		cancel context.CancelFunc
	)
	if s.rehydrateTimeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, s.rehydrateTimeout)
	} else {
		rctx, cancel = context.WithCancel(ctx)
	}
	s.cancel = cancel
	s.mu.Unlock()

	go s.rehydrate(rctx, cancel, gen, done)
	return done
}

func (s *Store) rehydrate(ctx context.Context, cancel context.CancelFunc, gen uint64, done chan struct{}) {
	defer close(done)
	defer cancel()

	id, err := s.profiles.Profile(ctx)

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale rehydration result")
		return
	}
	s.cancel = nil

	if err == nil {
		s.identity = id
		s.state = StateAuthenticated
		s.lastErr = nil
		s.mu.Unlock()
		s.log.Info(ctx, "session restored", "username", id.Username)
		return
	}

	s.token = ""
	s.identity = models.Identity{}
	s.state = StateAnonymous
	s.lastErr = err
	s.mu.Unlock()

	// The caller gave up (shutdown), which says nothing about the token.
	if errors.Is(ctx.Err(), context.Canceled) {
		s.log.Info(ctx, "session restore abandoned")
		return
	}

	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		s.log.Warn(ctx, "stored session rejected", "err", err)
	case gateway.IsRetryable(err):
		s.log.Warn(ctx, "could not restore session, backend unreachable", "err", err)
	default:
		s.log.Warn(ctx, "could not restore session", "err", err)
	}

	pctx := context.WithoutCancel(ctx)
	if err := s.tokens.Delete(pctx); err != nil {
		s.log.Error(pctx, "failed to delete persisted token", "err", err)
	}
}

// Login installs a server-issued session and persists its token. The
// in-memory session is switched before Login returns even if persisting
// fails; the persistence error is returned for the caller to report.
func (s *Store) Login(ctx context.Context, res models.LoginResult) error {
	if res.Token == "" {
		return ErrNoToken
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.bumpLocked()
	s.token = res.Token
	s.identity = res.Identity
	s.state = StateAuthenticated
	s.mu.Unlock()

	if err := s.tokens.Save(ctx, res.Token); err != nil {
		s.log.Error(ctx, "failed to persist token", "err", err)
		return err
	}
	return nil
}

// Logout drops the session and the persisted token. Calling it while
// already anonymous is fine.
func (s *Store) Logout(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.bumpLocked()
	s.token = ""
	s.identity = models.Identity{}
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Error(ctx, "failed to delete persisted token", "err", err)
		return err
	}
	return nil
}

// bumpLocked invalidates any running rehydration. Caller holds mu.
func (s *Store) bumpLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// CurrentUser returns the identity only when authenticated; a pending
// session reports no user.
func (s *Store) CurrentUser() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return models.Identity{}, false
	}
	return s.identity, true
}

// SetIdentity refreshes the cached identity after a profile update. It is
// ignored unless the session is authenticated.
func (s *Store) SetIdentity(id models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthenticated {
		s.identity = id
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token implements gateway.TokenSource. While pending it yields the
// provisional token so the rehydration fetch can use it.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LastError is the error of the most recent failed rehydration, kept for
// diagnostics.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Wait blocks until Initialize has resolved or ctx is done. It returns
// immediately if Initialize was never called.
func (s *Store) Wait(ctx context.Context) error {
	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels a running rehydration and discards its result. The Store
// stays usable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bumpLocked()
}
