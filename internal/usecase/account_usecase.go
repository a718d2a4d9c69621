package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	recorder    Recorder
	logger      zerolog.Logger
	defaultRate decimal.Decimal
}

// NewAccountUseCase creates a new AccountUseCase. A nil recorder disables metrics.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	recorder Recorder,
	logger zerolog.Logger,
) *AccountUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		recorder:    recorder,
		logger:      logger.With().Str("component", "account_usecase").Logger(),
		defaultRate: domain.DefaultInterestRate,
	}
}

// WithDefaultInterestRate sets the rate given to savings accounts opened without one.
func (uc *AccountUseCase) WithDefaultInterestRate(rate decimal.Decimal) *AccountUseCase {
	uc.defaultRate = rate
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	ID             string
	Holder         string
	Kind           string
	OpeningBalance decimal.Decimal
	InterestRate   *decimal.Decimal
}

// CreateAccount opens a new account in the registry.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account, err := uc.buildAccount(input)
	if err != nil {
		uc.fail(OperationCreate, input.ID, err)
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		uc.fail(OperationCreate, input.ID, err)
		return nil, err
	}

	uc.recorder.AccountCreated(account.Kind)
	uc.recorder.OperationSucceeded(OperationCreate)
	uc.logger.Info().
		Str("account_id", account.ID).
		Str("kind", string(account.Kind)).
		Str("balance", account.Balance.String()).
		Msg("account created")

	return account, nil
}

func (uc *AccountUseCase) buildAccount(input CreateAccountInput) (*domain.Account, error) {
	kind, err := domain.ParseAccountKind(input.Kind)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if err := domain.ValidateAccountID(id); err != nil {
		return nil, err
	}

	holder := strings.TrimSpace(input.Holder)
	if err := domain.ValidateHolderName(holder); err != nil {
		return nil, err
	}

	if err := domain.ValidateOpeningBalance(input.OpeningBalance); err != nil {
		return nil, err
	}

	rate := decimal.Zero
	if kind == domain.AccountKindSavings {
		rate = uc.defaultRate
		if input.InterestRate != nil {
			rate = *input.InterestRate
		}

		if err := domain.ValidateInterestRate(rate); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	return &domain.Account{
		ID:           id,
		Holder:       holder,
		Kind:         kind,
		Balance:      input.OpeningBalance,
		InterestRate: rate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Deposit adds amount to the account balance.
func (uc *AccountUseCase) Deposit(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
	return uc.mutate(ctx, OperationDeposit, id, func(a *domain.Account) error {
		return a.Deposit(amount)
	})
}

// Withdraw removes amount from the account balance.
func (uc *AccountUseCase) Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error) {
	return uc.mutate(ctx, OperationWithdraw, id, func(a *domain.Account) error {
		return a.Withdraw(amount)
	})
}

// CalculateInterest accrues interest once on a savings account.
func (uc *AccountUseCase) CalculateInterest(ctx context.Context, id string) (domain.InterestResult, error) {
	var result domain.InterestResult

	_, err := uc.mutate(ctx, OperationInterest, id, func(a *domain.Account) error {
		var err error
		result, err = a.CalculateInterest()
		return err
	})
	if err != nil {
		return domain.InterestResult{}, err
	}

	uc.recorder.InterestAccrued(result.Interest)

	return result, nil
}

// mutate loads the account under a transaction, applies fn and stores the new balance.
func (uc *AccountUseCase) mutate(
	ctx context.Context,
	operation, id string,
	fn func(*domain.Account) error,
) (*domain.Account, error) {
	account, err := uc.applyInTx(ctx, id, fn)
	if err != nil {
		uc.fail(operation, id, err)
		return nil, err
	}

	uc.recorder.OperationSucceeded(operation)
	uc.logger.Info().
		Str("operation", operation).
		Str("account_id", id).
		Str("balance", account.Balance.String()).
		Msg("balance updated")

	return account, nil
}

func (uc *AccountUseCase) applyInTx(ctx context.Context, id string, fn func(*domain.Account) error) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(account); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.Balance, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.UpdatedAt = now

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance returns the current balance of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.GetBalance(), nil
}

// DisplayAccountInfo returns a snapshot of the account for display.
func (uc *AccountUseCase) DisplayAccountInfo(ctx context.Context, id string) (domain.AccountInfo, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return domain.AccountInfo{}, err
	}
	return account.Info(), nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}
	if input.Limit > maxListLimit {
		input.Limit = maxListLimit
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}

func (uc *AccountUseCase) fail(operation, id string, err error) {
	uc.recorder.OperationFailed(operation, err)
	uc.logger.Warn().
		Err(err).
		Str("operation", operation).
		Str("account_id", id).
		Msg("operation rejected")
}
