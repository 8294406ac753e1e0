package reaper

import (
	"context"
	"errors"

	"github.com/go-class-triggers/internal/domain"
)

// AccountDeleter removes an identity-provider account. Implementations wrap
// domain.ErrNotFound when the account does not exist.
type AccountDeleter interface {
	Delete(ctx context.Context, userID string) error
}

// Service deletes the auth account behind a removed user document.
type Service interface {
	Reap(ctx context.Context, userID string) domain.Outcome
}

type service struct {
	accounts AccountDeleter
}

func NewService(accounts AccountDeleter) Service {
	return &service{accounts: accounts}
}

// Reap issues exactly one delete for userID. An account that is already gone
// is an expected race, not a fault.
func (s *service) Reap(ctx context.Context, userID string) domain.Outcome {
	if userID == "" {
		return domain.Skipped("missing user id")
	}
	err := s.accounts.Delete(ctx, userID)
	if err == nil {
		return domain.Succeeded(userID, "")
	}
	out := domain.Failed(userID, err)
	out.Expected = errors.Is(err, domain.ErrNotFound)
	return out
}
