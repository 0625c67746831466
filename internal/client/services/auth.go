// Package services contains the application services used by the CLI views.
// This file defines the authentication service: login, logout, registration,
// password change and a liveness check.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
	"github.com/dmitrijs2005/backoffice/internal/client/session"
	"github.com/dmitrijs2005/backoffice/internal/logging"
)

// AuthAPI is the subset of *api.Client used by AuthService.
type AuthAPI interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) (models.RegistrationResult, error)
	ChangePassword(ctx context.Context, p models.PasswordChange) error
}

// Session is the subset of *session.Store the services need.
type Session interface {
	Login(ctx context.Context, res models.LoginResult) error
	Logout(ctx context.Context) error
	CurrentUser() (models.Identity, bool)
	SetIdentity(id models.Identity)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate, authenticate against the backend, install the session.
//   - Logout: tell the backend (best effort), then drop the local session.
//   - Register: create a new account; does not log in.
//   - ChangePassword: change the password of the logged-in user.
//   - Ping: check backend liveness.
type AuthService interface {
	Login(ctx context.Context, username, password string) (models.Identity, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) (models.RegistrationResult, error)
	ChangePassword(ctx context.Context, p models.PasswordChange) error
	Ping(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session Session
	log     logging.Logger
}

func NewAuthService(api AuthAPI, sess Session, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{api: api, session: sess, log: log.With("component", "auth")}
}

// Login returns the identity installed in the session. Backend errors come
// back wrapped, so errors.Is against the gateway sentinels still works. A
// failure to persist the token is logged but does not fail the login.
func (a *authService) Login(ctx context.Context, username, password string) (models.Identity, error) {
	creds := models.Credentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return models.Identity{}, err
	}

	res, err := a.api.Login(ctx, creds)
	if err != nil {
		return models.Identity{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Login(ctx, res); err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return models.Identity{}, fmt.Errorf("login error: %w", err)
		}
		// memory is switched even when the disk write failed
		a.log.Warn(ctx, "session will not survive a restart", "err", err)
	}
	return res.Identity, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if _, ok := a.session.CurrentUser(); ok {
		if err := a.api.Logout(ctx); err != nil {
			a.log.Warn(ctx, "server logout failed", "err", err)
		}
	}
	return a.session.Logout(ctx)
}

func (a *authService) Register(ctx context.Context, r models.Registration) (models.RegistrationResult, error) {
	if err := r.Validate(); err != nil {
		return models.RegistrationResult{}, err
	}
	res, err := a.api.Register(ctx, r)
	if err != nil {
		return models.RegistrationResult{}, fmt.Errorf("register error: %w", err)
	}
	return res, nil
}

func (a *authService) ChangePassword(ctx context.Context, p models.PasswordChange) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := a.api.ChangePassword(ctx, p); err != nil {
		return fmt.Errorf("change password error: %w", err)
	}
	return nil
}

// Ping proxies a liveness check to the backend.
func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}
