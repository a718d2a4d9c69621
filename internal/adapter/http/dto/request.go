package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	ID             string  `json:"id"`
	Holder         string  `json:"holder"`
	Type           string  `json:"type"`
	OpeningBalance string  `json:"opening_balance,omitempty"`
	InterestRate   *string `json:"interest_rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	input := usecase.CreateAccountInput{
		ID:     r.ID,
		Holder: r.Holder,
		Kind:   r.Type,
	}

	if r.OpeningBalance != "" {
		balance, err := parseAmount(r.OpeningBalance)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		input.OpeningBalance = balance
	}

	if r.InterestRate != nil {
		rate, err := decimal.NewFromString(*r.InterestRate)
		if err == nil {
			err = domain.ValidateAmountMagnitude(rate)
		}
		if err != nil {
			return usecase.CreateAccountInput{}, fmt.Errorf("%w: %s", domain.ErrInvalidInterestRate, err)
		}
		input.InterestRate = &rate
	}

	return input, nil
}

// AmountRequest represents a deposit or withdrawal.
type AmountRequest struct {
	Amount string `json:"amount"`
}

// ParseAmount parses the requested amount.
func (r *AmountRequest) ParseAmount() (decimal.Decimal, error) {
	return parseAmount(r.Amount)
}

// CreateTransactionRequest represents a transfer between two accounts.
type CreateTransactionRequest struct {
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.ExecuteTransactionInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return usecase.ExecuteTransactionInput{}, err
	}

	return usecase.ExecuteTransactionInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               amount,
	}, nil
}

// parseAmount parses a decimal string and bounds its magnitude before any arithmetic.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	if err := domain.ValidateAmountMagnitude(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
