package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransactionUseCase moves money between two accounts.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	idGen       IDGenerator
	recorder    Recorder
	logger      zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase. A nil recorder disables metrics.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	idGen IDGenerator,
	recorder Recorder,
	logger zerolog.Logger,
) *TransactionUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		idGen:       idGen,
		recorder:    recorder,
		logger:      logger.With().Str("component", "transaction_usecase").Logger(),
	}
}

// ExecuteTransactionInput represents input for a transfer between two accounts.
type ExecuteTransactionInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
}

// Execute withdraws from the source and deposits into the destination as one unit.
// Either both balances change or neither does.
func (uc *TransactionUseCase) Execute(ctx context.Context, input ExecuteTransactionInput) (*domain.Transaction, error) {
	transaction := &domain.Transaction{
		ID:                   uc.idGen.Generate(),
		SourceAccountID:      input.SourceAccountID,
		DestinationAccountID: input.DestinationAccountID,
		Amount:               input.Amount,
		CreatedAt:            time.Now().UTC(),
	}

	log := uc.logger.With().
		Str("transaction_id", transaction.ID).
		Str("source", transaction.SourceAccountID).
		Str("destination", transaction.DestinationAccountID).
		Str("amount", transaction.Amount.String()).
		Logger()

	if err := uc.execute(ctx, transaction); err != nil {
		uc.recorder.OperationFailed(OperationTransaction, err)
		log.Warn().Err(err).Msg("transaction failed")
		return nil, err
	}

	uc.recorder.OperationSucceeded(OperationTransaction)
	uc.recorder.TransactionAmount(transaction.Amount)
	log.Info().Msg("transaction executed")

	return transaction, nil
}

func (uc *TransactionUseCase) execute(ctx context.Context, transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}

	// Lock in a stable order
	accountIDs := []string{transaction.SourceAccountID, transaction.DestinationAccountID}
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	if len(accounts) != len(accountIDs) {
		return domain.ErrAccountNotFound
	}

	var source, destination *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case transaction.SourceAccountID:
			source = a
		case transaction.DestinationAccountID:
			destination = a
		}
	}

	if source == nil || destination == nil {
		return domain.ErrAccountNotFound
	}

	if err := source.Withdraw(transaction.Amount); err != nil {
		return err
	}

	if err := destination.Deposit(transaction.Amount); err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, source.ID, source.Balance, now); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, destination.ID, destination.Balance, now); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
