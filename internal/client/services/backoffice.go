package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
)

// BackOfficeAPI is the subset of *api.Client used by BackOfficeService.
type BackOfficeAPI interface {
	Profile(ctx context.Context) (models.Identity, error)
	UpdateProfile(ctx context.Context, id models.Identity) (models.Identity, error)
	ListAgreements(ctx context.Context) ([]models.Record, error)
	CreateAgreement(ctx context.Context, r models.Record) (models.Record, error)
	UpdateAgreement(ctx context.Context, id string, r models.Record) (models.Record, error)
	DeleteAgreement(ctx context.Context, id string) error
	ListClients(ctx context.Context) ([]models.Record, error)
	CreateClient(ctx context.Context, r models.Record) (models.Record, error)
	DeleteClient(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) ([]models.Record, error)
}

var (
	agreementRequired = []string{"company"}
	clientRequired    = []string{"first_name", "last_name", "display_name"}
)

// Summary holds the dashboard counters.
type Summary struct {
	Agreements   int
	Clients      int
	Transactions int
}

// BackOfficeService exposes the records the views display. Records are
// passed through untouched apart from required-field checks.
type BackOfficeService interface {
	Profile(ctx context.Context) (models.Identity, error)
	UpdateProfile(ctx context.Context, id models.Identity) (models.Identity, error)

	Agreements(ctx context.Context) ([]models.Record, error)
	CreateAgreement(ctx context.Context, r models.Record) (models.Record, error)
	UpdateAgreement(ctx context.Context, id string, r models.Record) (models.Record, error)
	DeleteAgreement(ctx context.Context, id string) error

	Clients(ctx context.Context) ([]models.Record, error)
	CreateClient(ctx context.Context, r models.Record) (models.Record, error)
	DeleteClient(ctx context.Context, id string) error

	Transactions(ctx context.Context) ([]models.Record, error)

	DashboardSummary(ctx context.Context) (Summary, error)
}

type backOfficeService struct {
	api     BackOfficeAPI
	session Session
}

func NewBackOfficeService(api BackOfficeAPI, session Session) BackOfficeService {
	return &backOfficeService{api: api, session: session}
}

func (s *backOfficeService) Profile(ctx context.Context) (models.Identity, error) {
	id, err := s.api.Profile(ctx)
	if err != nil {
		return models.Identity{}, fmt.Errorf("get profile error: %w", err)
	}
	return id, nil
}

// UpdateProfile saves the profile and refreshes the identity held by the
// session with what the backend returned.
func (s *backOfficeService) UpdateProfile(ctx context.Context, id models.Identity) (models.Identity, error) {
	updated, err := s.api.UpdateProfile(ctx, id)
	if err != nil {
		return models.Identity{}, fmt.Errorf("update profile error: %w", err)
	}
	s.session.SetIdentity(updated)
	return updated, nil
}

func (s *backOfficeService) Agreements(ctx context.Context) ([]models.Record, error) {
	recs, err := s.api.ListAgreements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agreements error: %w", err)
	}
	return recs, nil
}

func (s *backOfficeService) CreateAgreement(ctx context.Context, r models.Record) (models.Record, error) {
	if err := r.Require(agreementRequired...); err != nil {
		return nil, err
	}
	rec, err := s.api.CreateAgreement(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create agreement error: %w", err)
	}
	return rec, nil
}

func (s *backOfficeService) UpdateAgreement(ctx context.Context, id string, r models.Record) (models.Record, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := r.Require(agreementRequired...); err != nil {
		return nil, err
	}
	rec, err := s.api.UpdateAgreement(ctx, id, r)
	if err != nil {
		return nil, fmt.Errorf("update agreement %s error: %w", id, err)
	}
	return rec, nil
}

func (s *backOfficeService) DeleteAgreement(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.DeleteAgreement(ctx, id); err != nil {
		return fmt.Errorf("delete agreement %s error: %w", id, err)
	}
	return nil
}

func (s *backOfficeService) Clients(ctx context.Context) ([]models.Record, error) {
	recs, err := s.api.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients error: %w", err)
	}
	return recs, nil
}

func (s *backOfficeService) CreateClient(ctx context.Context, r models.Record) (models.Record, error) {
	if err := r.Require(clientRequired...); err != nil {
		return nil, err
	}
	rec, err := s.api.CreateClient(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create client error: %w", err)
	}
	return rec, nil
}

func (s *backOfficeService) DeleteClient(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.api.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %s error: %w", id, err)
	}
	return nil
}

func (s *backOfficeService) Transactions(ctx context.Context) ([]models.Record, error) {
	recs, err := s.api.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions error: %w", err)
	}
	return recs, nil
}

// DashboardSummary counts the records of each kind. The first failure
// aborts the summary.
func (s *backOfficeService) DashboardSummary(ctx context.Context) (Summary, error) {
	var sum Summary
	agreements, err := s.Agreements(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.Agreements = len(agreements)

	clients, err := s.Clients(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.Clients = len(clients)

	txs, err := s.Transactions(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.Transactions = len(txs)
	return sum, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id", models.ErrEmptyField)
	}
	return nil
}
