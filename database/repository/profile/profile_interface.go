package profileRepo

import (
	"context"
	"errors"

	"petcare/models"
)

// ErrNotFound is returned when the account has no profile for the role.
var ErrNotFound = errors.New("business profile not found")

// ProfileRepository looks up the business profile an account holds for one role.
type ProfileRepository interface {
	// FindByOwnerAndRole returns the profile owned by accountID with the given roleType.
	FindByOwnerAndRole(ctx context.Context, accountID string, roleType models.Role) (*models.BusinessProfile, error)
}
