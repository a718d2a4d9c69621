package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes checking and savings accounts.
type AccountKind string

const (
	AccountKindChecking AccountKind = "checking"
	AccountKindSavings  AccountKind = "savings"
)

// ParseAccountKind parses a kind name case-insensitively.
func ParseAccountKind(s string) (AccountKind, error) {
	switch AccountKind(strings.ToLower(strings.TrimSpace(s))) {
	case AccountKindChecking:
		return AccountKindChecking, nil
	case AccountKindSavings:
		return AccountKindSavings, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
	}
}

// Account represents a bank account held in the registry.
// InterestRate is only meaningful for savings accounts.
type Account struct {
	ID           string
	Holder       string
	Kind         AccountKind
	Balance      decimal.Decimal
	InterestRate decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountInfo is a read-only snapshot of an account.
type AccountInfo struct {
	ID           string
	Holder       string
	Kind         AccountKind
	Balance      decimal.Decimal
	InterestRate decimal.Decimal
}

func (i AccountInfo) String() string {
	return fmt.Sprintf("Account Number: %s, Account Holder: %s, Balance: %s", i.ID, i.Holder, i.Balance)
}

// InterestResult reports a single interest accrual.
type InterestResult struct {
	Interest   decimal.Decimal
	NewBalance decimal.Decimal
}

// IsSavings reports whether interest can accrue on the account.
func (a *Account) IsSavings() bool {
	return a.Kind == AccountKindSavings
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return &InsufficientFundsError{
			AccountID: a.ID,
			Balance:   a.Balance,
			Requested: amount,
		}
	}
	return nil
}

// ValidateCredit checks if account can be credited by amount.
func (a *Account) ValidateCredit(amount decimal.Decimal) error {
	return ValidateAmount(amount)
}

// Deposit increases the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.ValidateCredit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance by amount. The balance is left untouched on error.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := a.ValidateDebit(amount); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// GetBalance returns the current balance.
func (a *Account) GetBalance() decimal.Decimal {
	return a.Balance
}

// CalculateInterest adds balance * rate to the balance. Each call compounds.
func (a *Account) CalculateInterest() (InterestResult, error) {
	if !a.IsSavings() {
		return InterestResult{}, ErrInterestNotSupported
	}

	interest := a.Balance.Mul(a.InterestRate)
	a.Balance = a.Balance.Add(interest)

	return InterestResult{Interest: interest, NewBalance: a.Balance}, nil
}

// Info returns a snapshot of the account.
func (a *Account) Info() AccountInfo {
	return AccountInfo{
		ID:           a.ID,
		Holder:       a.Holder,
		Kind:         a.Kind,
		Balance:      a.Balance,
		InterestRate: a.InterestRate,
	}
}

// Clone returns a copy that shares no mutable state with a.
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
