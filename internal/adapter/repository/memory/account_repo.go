package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository on top of a Store.
// Every account it returns is a copy; changes reach the store only via UpdateBalance and Commit.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create registers a new account. Existing IDs are never overwritten.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.ID]; ok {
		return domain.ErrAccountExists
	}

	r.store.accounts[account.ID] = account.Clone()

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return a.Clone(), nil
}

// GetByIDForUpdate retrieves an account inside a transaction, including staged changes.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	t, err := asTx(tx, r.store)
	if err != nil {
		return nil, err
	}

	a, ok := t.view(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return a, nil
}

// GetByIDsForUpdate retrieves several accounts inside a transaction. Missing IDs are skipped.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	t, err := asTx(tx, r.store)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := t.view(id); ok {
			accounts = append(accounts, a)
		}
	}

	return accounts, nil
}

// UpdateBalance stages a new balance; it becomes visible to others on Commit.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := asTx(tx, r.store)
	if err != nil {
		return err
	}

	if _, ok := t.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}

	t.staged[id] = balanceUpdate{balance: balance, updatedAt: updatedAt}

	return nil
}

// List returns accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []*domain.Account{}, nil
	}

	end := len(ids)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	accounts := make([]*domain.Account, 0, end-offset)
	for _, id := range ids[offset:end] {
		accounts = append(accounts, r.store.accounts[id].Clone())
	}

	return accounts, nil
}

// view returns a copy of the account with any staged balance applied.
func (t *Tx) view(id string) (*domain.Account, bool) {
	a, ok := t.store.accounts[id]
	if !ok {
		return nil, false
	}

	cp := a.Clone()
	if u, ok := t.staged[id]; ok {
		cp.Balance = u.balance
		cp.UpdatedAt = u.updatedAt
	}

	return cp, true
}
