// Package messages holds the user-facing text shared by the terminal front ends.
package messages

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// Fixed messages.
const (
	AccountCreated       = "Account created successfully!"
	AccountNotFound      = "Account not found!"
	AccountsNotFound     = "One or both accounts not found!"
	AccountExists        = "Account already exists!"
	InvalidAccountType   = "Invalid account type!"
	InvalidAmount        = "Invalid amount!"
	InvalidChoice        = "Invalid choice! Please try again."
	InterestNotSupported = "Interest calculation is only available for savings accounts!"
	MissingIdentity      = "Account number and holder name cannot be empty!"
	DepositNotPositive   = "Deposit amount must be positive."
	WithdrawNotPositive  = "Withdrawal amount must be positive."
	SameAccount          = "Cannot transfer to the same account!"
	Goodbye              = "Exiting the application. Goodbye!"
)

// Messages that quote domain limits.
var (
	InvalidAccountID = fmt.Sprintf(
		"Account number must be at most %d characters with no spaces or slashes!", domain.MaxAccountIDLength)
	InvalidHolderName = fmt.Sprintf(
		"Account holder name must be at most %d characters!", domain.MaxHolderNameLength)
)

// Deposited reports a successful deposit.
func Deposited(amount, balance decimal.Decimal) string {
	return fmt.Sprintf("Deposited %s. New balance is %s.", amount, balance)
}

// Withdrew reports a successful withdrawal.
func Withdrew(amount, balance decimal.Decimal) string {
	return fmt.Sprintf("Withdrew %s. New balance is %s.", amount, balance)
}

// TransactionExecuted reports a successful transfer.
func TransactionExecuted(id string) string {
	return fmt.Sprintf("Transaction %s executed successfully.", id)
}

// TransactionFailed reports a rejected transfer.
func TransactionFailed(err error) string {
	return "Transaction failed: " + Describe(err, "")
}

// Interest reports an interest accrual on two lines.
func Interest(r domain.InterestResult) string {
	return fmt.Sprintf("Interest calculated: %s\nNew balance after interest: %s", r.Interest, r.NewBalance)
}

// Describe turns a core error into the text shown to the user.
// operation selects the wording for non-positive amounts.
func Describe(err error, operation string) string {
	var insufficient *domain.InsufficientFundsError

	switch {
	case errors.As(err, &insufficient):
		return fmt.Sprintf("Insufficient funds. Available balance is %s.", insufficient.Balance)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "Insufficient funds."
	case errors.Is(err, domain.ErrAccountNotFound):
		return AccountNotFound
	case errors.Is(err, domain.ErrAccountExists):
		return AccountExists
	case errors.Is(err, domain.ErrInvalidAccountType):
		return InvalidAccountType
	case errors.Is(err, domain.ErrInterestNotSupported):
		return InterestNotSupported
	case errors.Is(err, domain.ErrSameAccount):
		return SameAccount
	case errors.Is(err, domain.ErrEmptyValue):
		return MissingIdentity
	case errors.Is(err, domain.ErrInvalidAccountID):
		return InvalidAccountID
	case errors.Is(err, domain.ErrInvalidHolderName):
		return InvalidHolderName
	case errors.Is(err, domain.ErrInvalidInterestRate):
		return "Interest rate must be between 0 and 1."
	case errors.Is(err, domain.ErrInvalidAmount):
		switch operation {
		case "deposit":
			return DepositNotPositive
		case "withdraw":
			return WithdrawNotPositive
		default:
			return InvalidAmount
		}
	default:
		return "Error: " + err.Error()
	}
}
