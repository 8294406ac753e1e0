package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/go-class-triggers/internal/domain"
)

// userDeleter is the slice of *auth.Client the Accounts deleter uses.
type userDeleter interface {
	DeleteUser(ctx context.Context, uid string) error
}

// Accounts deletes Firebase Auth users.
type Accounts struct {
	client     func(ctx context.Context) (userDeleter, error)
	isNotFound func(error) bool
}

// NewAccounts returns an Accounts deleter that obtains its client lazily from app.
func NewAccounts(app *App) *Accounts {
	return &Accounts{
		client: func(ctx context.Context) (userDeleter, error) {
			return app.Auth(ctx)
		},
		isNotFound: auth.IsUserNotFound,
	}
}

func (a *Accounts) Delete(ctx context.Context, userID string) error {
	client, err := a.client(ctx)
	if err != nil {
		return fmt.Errorf("firebase auth: %w: %w", domain.ErrUnavailable, err)
	}
	if err := client.DeleteUser(ctx, userID); err != nil {
		if a.isNotFound(err) {
			return fmt.Errorf("firebase auth user %s: %w", userID, domain.ErrNotFound)
		}
		return fmt.Errorf("firebase auth delete %s: %w", userID, classify(err))
	}
	return nil
}
