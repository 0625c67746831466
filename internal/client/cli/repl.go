package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/backoffice/internal/client/guard"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	Resolve(name string) (guard.Route, error)

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Profile(ctx context.Context) error
	ProfileEdit(ctx context.Context) error
	ChangePassword(ctx context.Context) error

	Agreements(ctx context.Context, term string) error
	AgreementAdd(ctx context.Context) error
	AgreementEdit(ctx context.Context, id string) error
	AgreementDelete(ctx context.Context, id string) error

	Clients(ctx context.Context, term string) error
	ClientAdd(ctx context.Context) error
	ClientDelete(ctx context.Context, id string) error

	Transactions(ctx context.Context, term string) error
}

const helpText = `Available commands:
  login, register, logout
  dashboard (/), profile, profile-edit, passwd
  agreements [term], agreement-add, agreement-edit <id>, agreement-del <id>
  clients [term], client-add, client-del <id>
  transactions [term]
  help, exit`

// runREPL reads commands from reader and dispatches them to a. Views prompt
// through the same reader, so their answers are never taken for commands. Every view
// goes through the route guard first; a view the session may not see is
// replaced by the login view. Handler errors are reported by the handlers
// themselves and otherwise ignored so the loop keeps going. The loop exits
// on EOF, on "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bo (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "login":
			_ = a.Login(ctx)

		case "register":
			view(ctx, a, guard.Register.Name, a.Register)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard", guard.Root:
			view(ctx, a, cmd, a.Dashboard)

		case "profile":
			view(ctx, a, guard.Profile.Name, a.Profile)

		case "profile-edit":
			view(ctx, a, guard.Profile.Name, a.ProfileEdit)

		case "passwd":
			view(ctx, a, guard.Profile.Name, a.ChangePassword)

		case "agreements":
			search(ctx, a, args, guard.Agreements.Name, a.Agreements)

		case "agreement-add":
			view(ctx, a, guard.AgreementCreate.Name, a.AgreementAdd)

		case "agreement-edit":
			withID(ctx, a, cmd, args, guard.Agreements.Name, a.AgreementEdit)

		case "agreement-del":
			withID(ctx, a, cmd, args, guard.Agreements.Name, a.AgreementDelete)

		case "clients":
			search(ctx, a, args, guard.Clients.Name, a.Clients)

		case "client-add":
			view(ctx, a, guard.Clients.Name, a.ClientAdd)

		case "client-del":
			withID(ctx, a, cmd, args, guard.Clients.Name, a.ClientDelete)

		case "transactions":
			search(ctx, a, args, guard.Transactions.Name, a.Transactions)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// view renders fn if the guard lets route through, otherwise the route the
// guard redirected to (the login view).
func view(ctx context.Context, a execIface, route string, fn func(context.Context) error) {
	want, ok := guard.Lookup(route)
	if !ok {
		printlnFn("Unknown view:", route)
		return
	}
	got, err := a.Resolve(route)
	if err != nil {
		printlnFn(err.Error())
		return
	}
	if got != want {
		printlnFn("Please log in")
		_ = a.Login(ctx)
		return
	}
	_ = fn(ctx)
}

func withID(ctx context.Context, a execIface, cmd string, args []string, route string, fn func(context.Context, string) error) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return
	}
	view(ctx, a, route, func(ctx context.Context) error { return fn(ctx, args[0]) })
}

// search runs a list view; any arguments form the filter term.
func search(ctx context.Context, a execIface, args []string, route string, fn func(context.Context, string) error) {
	term := strings.Join(args, " ")
	view(ctx, a, route, func(ctx context.Context) error { return fn(ctx, term) })
}
