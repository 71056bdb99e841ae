package accountRepo

import (
	"context"
	"sync"

	"petcare/models"
)

// MemoryAccountRepo is an in-process AccountRepository for local runs and tests.
type MemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
}

func NewMemoryAccountRepo(accounts ...models.Account) *MemoryAccountRepo {
	r := &MemoryAccountRepo{accounts: make(map[string]models.Account, len(accounts))}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

// Put inserts or replaces an account, standing in for the identity system.
func (r *MemoryAccountRepo) Put(account models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.ID] = account
}

func (r *MemoryAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}
