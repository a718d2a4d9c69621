package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository defines data access for the account registry.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// Transaction represents a unit of work against the registry.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Recorder receives operation outcomes for metrics.
type Recorder interface {
	AccountCreated(kind domain.AccountKind)
	OperationSucceeded(operation string)
	OperationFailed(operation string, err error)
	TransactionAmount(amount decimal.Decimal)
	InterestAccrued(amount decimal.Decimal)
}

// IdempotencyStore remembers responses to requests carrying an idempotency key.
type IdempotencyStore interface {
	// Reserve claims key for a new request. When the key is already taken,
	// reserved is false and cached holds the stored response, or nil while
	// the first request is still running.
	Reserve(ctx context.Context, key string, ttl time.Duration) (reserved bool, cached []byte, err error)
	// Complete stores the final response for key.
	Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}

type noopRecorder struct{}

func (noopRecorder) AccountCreated(domain.AccountKind) {}
func (noopRecorder) OperationSucceeded(string) {}
func (noopRecorder) OperationFailed(string, error) {}
func (noopRecorder) TransactionAmount(decimal.Decimal) {}
func (noopRecorder) InterestAccrued(decimal.Decimal) {}
