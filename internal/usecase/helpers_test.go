package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type bank struct {
	accounts     *usecase.AccountUseCase
	transactions *usecase.TransactionUseCase
}

func newBank(t *testing.T) *bank {
	t.Helper()

	store := memory.NewStore()
	txm := memory.NewTxManager(store)
	repo := memory.NewAccountRepository(store)

	return &bank{
		accounts:     usecase.NewAccountUseCase(txm, repo, nil, zerolog.Nop()),
		transactions: usecase.NewTransactionUseCase(txm, repo, memory.NewULIDGenerator(), nil, zerolog.Nop()),
	}
}

func (b *bank) open(t *testing.T, id, kind string, balance int64) *domain.Account {
	t.Helper()

	acc, err := b.accounts.CreateAccount(context.Background(), usecase.CreateAccountInput{
		ID:             id,
		Holder:         "holder-" + id,
		Kind:           kind,
		OpeningBalance: decimal.NewFromInt(balance),
	})
	require.NoError(t, err)

	return acc
}

func (b *bank) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()

	bal, err := b.accounts.GetBalance(context.Background(), id)
	require.NoError(t, err)

	return bal
}
