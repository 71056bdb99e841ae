package accountRepo

import (
	"context"
	"errors"

	"petcare/models"
)

// ErrNotFound is returned when no account carries the requested id.
var ErrNotFound = errors.New("account not found")

// AccountRepository looks up account status. Accounts are owned by the identity
// system, so this core never writes them.
type AccountRepository interface {
	// GetByID retrieves the account projection for a principal id.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
