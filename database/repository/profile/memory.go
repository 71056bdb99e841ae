package profileRepo

import (
	"context"
	"sync"

	"petcare/models"
)

type profileKey struct {
	owner string
	role  models.Role
}

// MemoryProfileRepo is an in-process ProfileRepository for local runs and tests.
type MemoryProfileRepo struct {
	mu       sync.RWMutex
	profiles map[profileKey]models.BusinessProfile
}

func NewMemoryProfileRepo(profiles ...models.BusinessProfile) *MemoryProfileRepo {
	r := &MemoryProfileRepo{profiles: make(map[profileKey]models.BusinessProfile, len(profiles))}
	for _, p := range profiles {
		r.profiles[profileKey{p.OwnerAccountID, p.RoleType}] = p
	}
	return r
}

// Put inserts or replaces a profile, standing in for onboarding and admin review.
func (r *MemoryProfileRepo) Put(profile models.BusinessProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profileKey{profile.OwnerAccountID, profile.RoleType}] = profile
}

func (r *MemoryProfileRepo) FindByOwnerAndRole(_ context.Context, accountID string, roleType models.Role) (*models.BusinessProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[profileKey{accountID, roleType}]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}
