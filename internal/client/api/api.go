// Package api maps the back-office REST endpoints onto typed Go calls. It
// owns no state; every request goes through the gateway it was built with.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
)

// Transport is the subset of *gateway.Gateway used here.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

const (
	pathRoot           = "/"
	pathLogin          = "/login/"
	pathLogout         = "/logout/"
	pathRegister       = "/register/"
	pathProfile        = "/profile/"
	pathChangePassword = "/change-password/"
	pathAgreements     = "/agreements/"
	pathClients        = "/clients/"
	pathTransactions   = "/transactions/"
)

type Client struct {
	t Transport
}

func NewClient(t Transport) *Client {
	return &Client{t: t}
}

// Ping checks that the API root answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.t.Get(ctx, pathRoot, nil)
}

// Login exchanges credentials for a token and identity fields.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var res models.LoginResult
	if err := c.t.Post(ctx, pathLogin, creds, &res); err != nil {
		return models.LoginResult{}, err
	}
	return res, nil
}

// Logout asks the backend to revoke the current token.
func (c *Client) Logout(ctx context.Context) error {
	return c.t.Post(ctx, pathLogout, nil, nil)
}

// Register creates an account. The backend answers with the new user under
// "user" and a confirmation message.
func (c *Client) Register(ctx context.Context, r models.Registration) (models.RegistrationResult, error) {
	var res models.RegistrationResult
	if err := c.t.Post(ctx, pathRegister, r, &res); err != nil {
		return models.RegistrationResult{}, err
	}
	return res, nil
}

// Profile fetches the identity bound to the attached credential.
func (c *Client) Profile(ctx context.Context) (models.Identity, error) {
	var id models.Identity
	if err := c.t.Get(ctx, pathProfile, &id); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}

func (c *Client) UpdateProfile(ctx context.Context, id models.Identity) (models.Identity, error) {
	var out models.Identity
	if err := c.t.Put(ctx, pathProfile, id, &out); err != nil {
		return models.Identity{}, err
	}
	return out, nil
}

// ChangePassword is an update of the current user, hence PUT.
func (c *Client) ChangePassword(ctx context.Context, p models.PasswordChange) error {
	return c.t.Put(ctx, pathChangePassword, p, nil)
}

func (c *Client) ListAgreements(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, pathAgreements)
}

func (c *Client) CreateAgreement(ctx context.Context, r models.Record) (models.Record, error) {
	return c.create(ctx, pathAgreements, r)
}

func (c *Client) UpdateAgreement(ctx context.Context, id string, r models.Record) (models.Record, error) {
	var out models.Record
	if err := c.t.Put(ctx, item(pathAgreements, id), r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteAgreement(ctx context.Context, id string) error {
	return c.t.Delete(ctx, item(pathAgreements, id))
}

func (c *Client) ListClients(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, pathClients)
}

func (c *Client) CreateClient(ctx context.Context, r models.Record) (models.Record, error) {
	return c.create(ctx, pathClients, r)
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.t.Delete(ctx, item(pathClients, id))
}

func (c *Client) ListTransactions(ctx context.Context) ([]models.Record, error) {
	return c.list(ctx, pathTransactions)
}

func (c *Client) create(ctx context.Context, path string, r models.Record) (models.Record, error) {
	var out models.Record
	if err := c.t.Post(ctx, path, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// list accepts both a bare JSON array and a paginated {"results": [...]}
// envelope.
func (c *Client) list(ctx context.Context, path string) ([]models.Record, error) {
	var raw json.RawMessage
	if err := c.t.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Record{}, nil
	}

	var recs []models.Record
	if err := json.Unmarshal(raw, &recs); err == nil {
		return recs, nil
	}

	var page struct {
		Results []models.Record `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if page.Results == nil {
		page.Results = []models.Record{}
	}
	return page.Results, nil
}

func item(collection, id string) string {
	return collection + url.PathEscape(id) + "/"
}
