// Package form implements the terminal form front end.
package form

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/messages"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// Action is what the user picked in the form.
type Action string

// Form actions.
const (
	ActionCreate   Action = "create"
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionTransfer Action = "transfer"
	ActionInterest Action = "interest"
	ActionDisplay  Action = "display"
	ActionQuit     Action = "quit"
)

// Dialog titles.
const (
	TitleSuccess = "Success"
	TitleError   = "Error"
	TitleInfo    = "Account Info"
)

// AccountService defines the account operations the form needs.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	CalculateInterest(ctx context.Context, id string) (domain.InterestResult, error)
	DisplayAccountInfo(ctx context.Context, id string) (domain.AccountInfo, error)
}

// TransactionService defines the transfer operation the form needs.
type TransactionService interface {
	Execute(ctx context.Context, input usecase.ExecuteTransactionInput) (*domain.Transaction, error)
}

// Fields holds the raw text of every form field.
type Fields struct {
	Action        Action
	AccountID     string
	Holder        string
	Kind          string
	Balance       string
	InterestRate  string
	Amount        string
	DestinationID string
}

// Result is the dialog shown after an action.
type Result struct {
	Title   string
	Message string
}

// IsError reports whether the dialog is a warning.
func (r Result) IsError() bool {
	return r.Title == TitleError
}

func success(msg string) Result { return Result{Title: TitleSuccess, Message: msg} }
func failure(msg string) Result { return Result{Title: TitleError, Message: msg} }

var errNotNumber = errors.New(messages.InvalidAmount)

// Dispatcher parses form fields and runs the chosen action against the core.
type Dispatcher struct {
	accounts     AccountService
	transactions TransactionService
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(accounts AccountService, transactions TransactionService) *Dispatcher {
	return &Dispatcher{accounts: accounts, transactions: transactions}
}

// Dispatch runs f.Action and returns the dialog to display.
func (d *Dispatcher) Dispatch(ctx context.Context, f Fields) Result {
	switch f.Action {
	case ActionCreate:
		return d.create(ctx, f)
	case ActionDeposit:
		return d.deposit(ctx, f)
	case ActionWithdraw:
		return d.withdraw(ctx, f)
	case ActionTransfer:
		return d.transfer(ctx, f)
	case ActionInterest:
		return d.interest(ctx, f)
	case ActionDisplay:
		return d.display(ctx, f)
	default:
		return failure(messages.InvalidChoice)
	}
}

func (d *Dispatcher) create(ctx context.Context, f Fields) Result {
	id := strings.TrimSpace(f.AccountID)
	holder := strings.TrimSpace(f.Holder)
	if id == "" || holder == "" {
		return failure(messages.MissingIdentity)
	}

	balance, err := parseNumber(f.Balance, true)
	if err != nil {
		return failure(messages.InvalidAmount)
	}

	kind := strings.TrimSpace(f.Kind)
	if kind == "" {
		kind = string(domain.AccountKindChecking)
	}

	input := usecase.CreateAccountInput{
		ID:             id,
		Holder:         holder,
		Kind:           kind,
		OpeningBalance: balance,
	}

	if strings.TrimSpace(f.InterestRate) != "" {
		rate, err := parseNumber(f.InterestRate, false)
		if err != nil {
			return failure(messages.InvalidAmount)
		}
		input.InterestRate = &rate
	}

	if _, err := d.accounts.CreateAccount(ctx, input); err != nil {
		return failure(messages.Describe(err, ""))
	}

	return success(messages.AccountCreated)
}

func (d *Dispatcher) deposit(ctx context.Context, f Fields) Result {
	amount, err := parseNumber(f.Amount, false)
	if err != nil {
		return failure(messages.InvalidAmount)
	}

	account, err := d.accounts.Deposit(ctx, strings.TrimSpace(f.AccountID), amount)
	if err != nil {
		return failure(messages.Describe(err, "deposit"))
	}

	return success(messages.Deposited(amount, account.Balance))
}

func (d *Dispatcher) withdraw(ctx context.Context, f Fields) Result {
	amount, err := parseNumber(f.Amount, false)
	if err != nil {
		return failure(messages.InvalidAmount)
	}

	account, err := d.accounts.Withdraw(ctx, strings.TrimSpace(f.AccountID), amount)
	if err != nil {
		return failure(messages.Describe(err, "withdraw"))
	}

	return success(messages.Withdrew(amount, account.Balance))
}

func (d *Dispatcher) transfer(ctx context.Context, f Fields) Result {
	amount, err := parseNumber(f.Amount, false)
	if err != nil {
		return failure(messages.InvalidAmount)
	}

	transaction, err := d.transactions.Execute(ctx, usecase.ExecuteTransactionInput{
		SourceAccountID:      strings.TrimSpace(f.AccountID),
		DestinationAccountID: strings.TrimSpace(f.DestinationID),
		Amount:               amount,
	})
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return failure(messages.AccountsNotFound)
	case err != nil:
		return failure(messages.TransactionFailed(err))
	}

	return success(messages.TransactionExecuted(transaction.ID))
}

func (d *Dispatcher) interest(ctx context.Context, f Fields) Result {
	result, err := d.accounts.CalculateInterest(ctx, strings.TrimSpace(f.AccountID))
	if err != nil {
		return failure(messages.Describe(err, ""))
	}

	return success(messages.Interest(result))
}

func (d *Dispatcher) display(ctx context.Context, f Fields) Result {
	info, err := d.accounts.DisplayAccountInfo(ctx, strings.TrimSpace(f.AccountID))
	if err != nil {
		return failure(messages.Describe(err, ""))
	}

	return Result{Title: TitleInfo, Message: info.String()}
}

// parseNumber parses a decimal field. Blank is zero when optional.
func parseNumber(s string, optional bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" && optional {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || domain.ValidateAmountMagnitude(d) != nil {
		return decimal.Zero, errNotNumber
	}
	return d, nil
}
