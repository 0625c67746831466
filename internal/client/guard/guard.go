// Package guard decides whether a view may be shown for the current session.
package guard

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/backoffice/internal/client/session"
)

// ErrUnknownRoute is returned by Resolve for a name not in the route table.
var ErrUnknownRoute = errors.New("unknown route")

type Route struct {
	Name      string
	Protected bool
}

var (
	Login           = Route{Name: "login"}
	Register        = Route{Name: "register"}
	Dashboard       = Route{Name: "dashboard", Protected: true}
	Profile         = Route{Name: "profile", Protected: true}
	Agreements      = Route{Name: "agreements", Protected: true}
	AgreementCreate = Route{Name: "agreement-create", Protected: true}
	Clients         = Route{Name: "clients", Protected: true}
	Transactions    = Route{Name: "transactions", Protected: true}
)

// Root is an alias that always lands on the dashboard.
const Root = "/"

var routes = map[string]Route{
	Login.Name:           Login,
	Register.Name:        Register,
	Dashboard.Name:       Dashboard,
	Profile.Name:         Profile,
	Agreements.Name:      Agreements,
	AgreementCreate.Name: AgreementCreate,
	Clients.Name:         Clients,
	Transactions.Name:    Transactions,
}

// Decision is the outcome of Check. When Allow is false the caller shows
// Redirect instead of the requested route.
type Decision struct {
	Allow    bool
	Redirect Route
}

// Check is a pure predicate over the session state. Public routes are always
// shown; protected ones only when authenticated. A pending session is
// treated like an anonymous one.
func Check(state session.State, r Route) Decision {
	if !r.Protected || state == session.StateAuthenticated {
		return Decision{Allow: true}
	}
	return Decision{Redirect: Login}
}

// Lookup returns the route registered under name; "/" maps to the dashboard.
func Lookup(name string) (Route, bool) {
	if name == Root {
		return Dashboard, true
	}
	r, ok := routes[name]
	return r, ok
}

// StateReader is satisfied by *session.Store.
type StateReader interface {
	State() session.State
}

// Guard binds Check to a live session.
type Guard struct {
	sessions StateReader
}

func New(sessions StateReader) *Guard {
	return &Guard{sessions: sessions}
}

// Resolve looks up name and returns the route that should actually be shown.
func (g *Guard) Resolve(name string) (Route, error) {
	r, ok := Lookup(name)
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	d := Check(g.sessions.State(), r)
	if !d.Allow {
		return d.Redirect, nil
	}
	return r, nil
}
