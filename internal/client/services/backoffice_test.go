package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/backoffice/internal/client/gateway"
	"github.com/dmitrijs2005/backoffice/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackOffice_UpdateProfileRefreshesSession(t *testing.T) {
	api := &fakeAPI{
		loginRes: models.LoginResult{Token: "t", Identity: models.Identity{Username: "alice"}},
		updated:  models.Identity{Username: "alice", Email: "new@x.com"},
	}
	store := newStore(t, &memTokens{}, api)
	require.NoError(t, store.Login(context.Background(), api.loginRes))

	svc := NewBackOfficeService(api, store)
	got, err := svc.UpdateProfile(context.Background(), models.Identity{Username: "alice", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", got.Email)

	cur, _ := store.CurrentUser()
	assert.Equal(t, "new@x.com", cur.Email)
}

func TestBackOffice_UpdateProfileError(t *testing.T) {
	api := &fakeAPI{updateErr: &gateway.StatusError{StatusCode: 401}}
	svc := NewBackOfficeService(api, newStore(t, &memTokens{}, api))

	_, err := svc.UpdateProfile(context.Background(), models.Identity{})
	require.ErrorIs(t, err, gateway.ErrUnauthorized)
}

func TestBackOffice_CreateValidation(t *testing.T) {
	api := &fakeAPI{created: models.Record{"id": float64(7)}}
	svc := NewBackOfficeService(api, newStore(t, &memTokens{}, api))
	ctx := context.Background()

	_, err := svc.CreateAgreement(ctx, models.Record{"policy": "x"})
	require.ErrorIs(t, err, models.ErrEmptyField)
	_, err = svc.CreateClient(ctx, models.Record{"first_name": "A", "last_name": "B"})
	require.ErrorIs(t, err, models.ErrEmptyField)
	_, err = svc.UpdateAgreement(ctx, " ", models.Record{"company": "c"})
	require.ErrorIs(t, err, models.ErrEmptyField)
	require.ErrorIs(t, svc.DeleteClient(ctx, ""), models.ErrEmptyField)
	require.ErrorIs(t, svc.DeleteAgreement(ctx, ""), models.ErrEmptyField)
	assert.Empty(t, api.calls)

	rec, err := svc.CreateAgreement(ctx, models.Record{"company": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "7", rec.ID())

	_, err = svc.CreateClient(ctx, models.Record{"first_name": "A", "last_name": "B", "display_name": "AB"})
	require.NoError(t, err)
	assert.Equal(t, "AB", api.lastRec["display_name"])

	_, err = svc.UpdateAgreement(ctx, "7", models.Record{"company": "Acme 2"})
	require.NoError(t, err)
	assert.Equal(t, "7", api.lastID)

	require.NoError(t, svc.DeleteClient(ctx, "3"))
	assert.Equal(t, "3", api.lastID)

	assert.Equal(t, []string{"create-agreement", "create-client", "update-agreement", "delete-client"}, api.calls)
}

func TestBackOffice_DeleteNotFound(t *testing.T) {
	api := &fakeAPI{deleteErr: &gateway.StatusError{StatusCode: 404}}
	svc := NewBackOfficeService(api, newStore(t, &memTokens{}, api))

	require.ErrorIs(t, svc.DeleteAgreement(context.Background(), "9"), gateway.ErrNotFound)
}

func TestBackOffice_DashboardSummary(t *testing.T) {
	api := &fakeAPI{
		agreements: []models.Record{{"id": 1.0}, {"id": 2.0}},
		clients:    []models.Record{{"id": 1.0}},
	}
	svc := NewBackOfficeService(api, newStore(t, &memTokens{}, api))

	sum, err := svc.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Agreements: 2, Clients: 1, Transactions: 0}, sum)
}

func TestBackOffice_DashboardSummaryError(t *testing.T) {
	api := &fakeAPI{listErr: gateway.ErrUnavailable}
	svc := NewBackOfficeService(api, newStore(t, &memTokens{}, api))

	_, err := svc.DashboardSummary(context.Background())
	require.ErrorIs(t, err, gateway.ErrUnavailable)
	assert.Equal(t, []string{"list-agreements"}, api.calls)
}
