package dto

import (
	"time"

	"github.com/iho/gobank/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string    `json:"id"`
	Holder       string    `json:"holder"`
	Type         string    `json:"type"`
	Balance      string    `json:"balance"`
	InterestRate string    `json:"interest_rate,omitempty"`
	Info         string    `json:"info"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:        a.ID,
		Holder:    a.Holder,
		Type:      string(a.Kind),
		Balance:   a.Balance.String(),
		Info:      a.Info().String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if a.IsSavings() {
		resp.InterestRate = a.InterestRate.String()
	}

	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents the current balance of an account.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}

// InterestResponse represents the outcome of an interest accrual.
type InterestResponse struct {
	AccountID string `json:"account_id"`
	Interest  string `json:"interest"`
	Balance   string `json:"balance"`
}

// InterestFromDomain converts an interest result to response.
func InterestFromDomain(accountID string, r domain.InterestResult) *InterestResponse {
	return &InterestResponse{
		AccountID: accountID,
		Interest:  r.Interest.String(),
		Balance:   r.NewBalance.String(),
	}
}

// TransactionResponse represents an executed transaction.
type TransactionResponse struct {
	ID                   string    `json:"id"`
	SourceAccountID      string    `json:"source_account_id"`
	DestinationAccountID string    `json:"destination_account_id"`
	Amount               string    `json:"amount"`
	CreatedAt            time.Time `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Amount:               t.Amount.String(),
		CreatedAt:            t.CreatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
