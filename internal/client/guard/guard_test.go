package guard

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
	"github.com/dmitrijs2005/backoffice/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedState session.State

func (f fixedState) State() session.State { return session.State(f) }

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		route Route
		want  Decision
	}{
		{"authenticated protected", session.StateAuthenticated, Dashboard, Decision{Allow: true}},
		{"anonymous protected", session.StateAnonymous, Dashboard, Decision{Redirect: Login}},
		{"pending protected", session.StatePending, Agreements, Decision{Redirect: Login}},
		{"anonymous public", session.StateAnonymous, Login, Decision{Allow: true}},
		{"pending public", session.StatePending, Register, Decision{Allow: true}},
		{"authenticated public", session.StateAuthenticated, Login, Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.state, tt.route))
		})
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("/")
	require.True(t, ok)
	assert.Equal(t, Dashboard, r)

	for _, name := range []string{"dashboard", "profile", "agreements", "agreement-create", "clients", "transactions"} {
		r, ok := Lookup(name)
		require.True(t, ok, name)
		assert.True(t, r.Protected, name)
	}
	for _, name := range []string{"login", "register"} {
		r, ok := Lookup(name)
		require.True(t, ok, name)
		assert.False(t, r.Protected, name)
	}

	_, ok = Lookup("admin")
	assert.False(t, ok)
}

func TestGuard_Resolve(t *testing.T) {
	g := New(fixedState(session.StateAnonymous))

	r, err := g.Resolve("clients")
	require.NoError(t, err)
	assert.Equal(t, Login, r)

	r, err = g.Resolve("register")
	require.NoError(t, err)
	assert.Equal(t, Register, r)

	_, err = g.Resolve("nope")
	assert.ErrorIs(t, err, ErrUnknownRoute)

	g = New(fixedState(session.StateAuthenticated))
	r, err = g.Resolve("/")
	require.NoError(t, err)
	assert.Equal(t, Dashboard, r)
	r, err = g.Resolve("transactions")
	require.NoError(t, err)
	assert.Equal(t, Transactions, r)
}

type tokens struct{ tok string }

func (t *tokens) Load(context.Context) (string, error)  { return t.tok, nil }
func (t *tokens) Save(_ context.Context, s string) error { t.tok = s; return nil }
func (t *tokens) Delete(context.Context) error           { t.tok = ""; return nil }

type profiles struct{}

func (profiles) Profile(context.Context) (models.Identity, error) {
	return models.Identity{}, nil
}

// A fresh start with nothing persisted lands on login.
func TestGuard_FreshStartRedirectsToLogin(t *testing.T) {
	s := session.NewStore(&tokens{}, profiles{}, nil)
	<-s.Initialize(context.Background())

	r, err := New(s).Resolve("dashboard")
	require.NoError(t, err)
	assert.Equal(t, Login, r)
}

// After login the dashboard renders.
func TestGuard_LoginThenDashboard(t *testing.T) {
	s := session.NewStore(&tokens{}, profiles{}, nil)
	<-s.Initialize(context.Background())
	require.NoError(t, s.Login(context.Background(), models.LoginResult{
		Token:    "abc123",
		Identity: models.Identity{Username: "alice", Email: "a@x.com"},
	}))

	r, err := New(s).Resolve("dashboard")
	require.NoError(t, err)
	assert.Equal(t, Dashboard, r)
}
