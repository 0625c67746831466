package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/backoffice/internal/client/gateway"
	"github.com/dmitrijs2005/backoffice/internal/client/models"
)

// getSimpleText, getPassword and getFields are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getFields     = GetFields
)

// Login is the login view. It prompts for credentials and, on success,
// shows the dashboard.
//
// A rejected credential and an unreachable backend produce different
// messages; neither changes the current session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		printlnFn(describe(err))
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		printlnFn(describe(err))
		return err
	}

	id, err := a.authService.Login(ctx, username, password)
	if err != nil {
		a.log.Debug(ctx, "login failed", "err", err)
		printlnFn(loginMessage(err))
		return err
	}

	printlnFn("Welcome,", id.DisplayName())
	return a.Dashboard(ctx)
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyField):
		return "Username and password are required"
	case errors.Is(err, gateway.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, gateway.ErrUnauthorized), errors.Is(err, gateway.ErrBadRequest):
		return "Invalid username or password"
	default:
		return "Login failed: " + err.Error()
	}
}

// Register is the sign-up view. It does not log the new user in.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Username", &r.Username},
		{"Email", &r.Email},
		{"First name", &r.FirstName},
		{"Last name", &r.LastName},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}
	if r.Password, err = getPassword("Password", a.out); err != nil {
		return err
	}
	if r.Password2, err = getPassword("Repeat password", a.out); err != nil {
		return err
	}

	res, err := a.authService.Register(ctx, r)
	if err != nil {
		return a.fail(ctx, "register", err)
	}
	if res.Message != "" {
		printlnFn(res.Message)
	}
	printlnFn("Account created, you can log in now")
	return nil
}

// Logout ends the session locally even if the backend cannot be told.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		// the in-memory session is gone regardless
		a.log.Error(ctx, "logout could not clear the stored session", "err", err)
	}
	printlnFn("Logged out")
	return nil
}

// ChangePassword asks for the old password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	var p models.PasswordChange
	var err error
	if p.OldPassword, err = getPassword("Current password", a.out); err != nil {
		return err
	}
	if p.NewPassword, err = getPassword("New password", a.out); err != nil {
		return err
	}
	repeat, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	if repeat != p.NewPassword {
		printlnFn(models.ErrPasswordMismatch.Error())
		return models.ErrPasswordMismatch
	}

	if err := a.authService.ChangePassword(ctx, p); err != nil {
		return a.fail(ctx, "change password", err)
	}
	printlnFn("Password changed")
	return nil
}
