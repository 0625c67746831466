package services

import (
	"context"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
)

// fakeAPI implements AuthAPI and BackOfficeAPI.
type fakeAPI struct {
	calls []string

	loginRes models.LoginResult
	loginErr error
	lastCred models.Credentials

	logoutErr error

	regRes models.RegistrationResult
	regErr error

	pwErr error

	pingErr error

	profile    models.Identity
	profileErr error
	updated    models.Identity
	updateErr  error

	agreements []models.Record
	clients    []models.Record
	txs        []models.Record
	listErr    error

	created   models.Record
	createErr error
	lastRec   models.Record
	lastID    string
	deleteErr error
}

func (f *fakeAPI) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) Ping(context.Context) error { f.record("ping"); return f.pingErr }

func (f *fakeAPI) Login(_ context.Context, c models.Credentials) (models.LoginResult, error) {
	f.record("login")
	f.lastCred = c
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) Logout(context.Context) error { f.record("logout"); return f.logoutErr }

func (f *fakeAPI) Register(context.Context, models.Registration) (models.RegistrationResult, error) {
	f.record("register")
	return f.regRes, f.regErr
}

func (f *fakeAPI) ChangePassword(context.Context, models.PasswordChange) error {
	f.record("change-password")
	return f.pwErr
}

func (f *fakeAPI) Profile(context.Context) (models.Identity, error) {
	f.record("profile")
	return f.profile, f.profileErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, id models.Identity) (models.Identity, error) {
	f.record("update-profile")
	return f.updated, f.updateErr
}

func (f *fakeAPI) ListAgreements(context.Context) ([]models.Record, error) {
	f.record("list-agreements")
	return f.agreements, f.listErr
}

func (f *fakeAPI) CreateAgreement(_ context.Context, r models.Record) (models.Record, error) {
	f.record("create-agreement")
	f.lastRec = r
	return f.created, f.createErr
}

func (f *fakeAPI) UpdateAgreement(_ context.Context, id string, r models.Record) (models.Record, error) {
	f.record("update-agreement")
	f.lastID, f.lastRec = id, r
	return f.created, f.createErr
}

func (f *fakeAPI) DeleteAgreement(_ context.Context, id string) error {
	f.record("delete-agreement")
	f.lastID = id
	return f.deleteErr
}

func (f *fakeAPI) ListClients(context.Context) ([]models.Record, error) {
	f.record("list-clients")
	return f.clients, f.listErr
}

func (f *fakeAPI) CreateClient(_ context.Context, r models.Record) (models.Record, error) {
	f.record("create-client")
	f.lastRec = r
	return f.created, f.createErr
}

func (f *fakeAPI) DeleteClient(_ context.Context, id string) error {
	f.record("delete-client")
	f.lastID = id
	return f.deleteErr
}

func (f *fakeAPI) ListTransactions(context.Context) ([]models.Record, error) {
	f.record("list-transactions")
	return f.txs, f.listErr
}
