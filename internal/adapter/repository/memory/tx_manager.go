package memory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

var (
	// ErrTxClosed is returned when committing a finished transaction.
	ErrTxClosed = errors.New("transaction already closed")
	// ErrForeignTx is returned when a repository receives a transaction it did not create.
	ErrForeignTx = errors.New("transaction does not belong to the memory store")
)

// TxManager implements usecase.TransactionManager.
// Transactions hold the store's writer lock, so at most one runs at a time.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.store.mu.Lock()

	return &Tx{
		store:  m.store,
		staged: make(map[string]balanceUpdate),
	}, nil
}

type balanceUpdate struct {
	balance   decimal.Decimal
	updatedAt time.Time
}

// Tx stages balance updates until Commit.
type Tx struct {
	store  *Store
	staged map[string]balanceUpdate
	closed bool
}

// Commit applies every staged update and releases the store.
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxClosed
	}

	for id, u := range t.staged {
		if a, ok := t.store.accounts[id]; ok {
			a.Balance = u.balance
			a.UpdatedAt = u.updatedAt
		}
	}

	t.finish()

	return nil
}

// Rollback discards staged updates. It is a no-op once the transaction is closed.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}

	t.finish()

	return nil
}

func (t *Tx) finish() {
	t.closed = true
	t.staged = nil
	t.store.mu.Unlock()
}

func asTx(tx usecase.Transaction, store *Store) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != store {
		return nil, ErrForeignTx
	}
	if t.closed {
		return nil, ErrTxClosed
	}
	return t, nil
}
