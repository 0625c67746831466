package storage

import "context"

// TokenKey is the single well-known key holding the persisted credential.
const TokenKey = "token"

// TokenStore persists at most one session token on top of a Repository.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Load returns the persisted token, or "" when there is none.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, ok, err := s.repo.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

// Save overwrites any previously persisted token.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, TokenKey, token)
}

func (s *TokenStore) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, TokenKey)
}
