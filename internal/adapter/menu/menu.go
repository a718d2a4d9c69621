// Package menu implements the numbered text menu front end.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/messages"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

const banner = `
Banking System Menu
1. Create Account
2. Deposit Money
3. Withdraw Money
4. Transfer Money
5. Calculate Interest (Savings Account)
6. Display Account Info
7. Exit
`

// AccountService defines the account operations the menu needs.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, id string, amount decimal.Decimal) (*domain.Account, error)
	CalculateInterest(ctx context.Context, id string) (domain.InterestResult, error)
	DisplayAccountInfo(ctx context.Context, id string) (domain.AccountInfo, error)
}

// TransactionService defines the transfer operation the menu needs.
type TransactionService interface {
	Execute(ctx context.Context, input usecase.ExecuteTransactionInput) (*domain.Transaction, error)
}

// errInputClosed signals that the input stream ended.
var errInputClosed = errors.New("input closed")

// errBadNumber signals that a numeric prompt got something unparsable.
var errBadNumber = errors.New("bad number")

// Menu reads choices line by line and drives the banking core.
type Menu struct {
	accounts     AccountService
	transactions TransactionService
	in           *bufio.Scanner
	out          io.Writer
	logger       zerolog.Logger
}

// New creates a Menu reading from in and writing to out.
func New(accounts AccountService, transactions TransactionService, in io.Reader, out io.Writer, logger zerolog.Logger) *Menu {
	return &Menu{
		accounts:     accounts,
		transactions: transactions,
		in:           bufio.NewScanner(in),
		out:          out,
		logger:       logger.With().Str("component", "menu").Logger(),
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, banner)

		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}

		var stop bool
		switch choice {
		case "1":
			err = m.createAccount(ctx)
		case "2":
			err = m.deposit(ctx)
		case "3":
			err = m.withdraw(ctx)
		case "4":
			err = m.transfer(ctx)
		case "5":
			err = m.calculateInterest(ctx)
		case "6":
			err = m.displayInfo(ctx)
		case "7":
			stop = true
		default:
			m.say(messages.InvalidChoice)
		}

		if stop {
			m.say(messages.Goodbye)
			return nil
		}

		if errors.Is(err, errBadNumber) {
			m.say(messages.InvalidAmount)
			continue
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		m.say("")
		m.say(messages.Goodbye)
		return nil
	}
	return err
}

func (m *Menu) createAccount(ctx context.Context) error {
	id, err := m.prompt("Enter account number: ")
	if err != nil {
		return err
	}

	holder, err := m.prompt("Enter account holder name: ")
	if err != nil {
		return err
	}

	kindText, err := m.prompt("Enter account type (savings/checking): ")
	if err != nil {
		return err
	}

	balance, err := m.promptAmount("Enter initial balance: ")
	if err != nil {
		return err
	}

	kind, err := domain.ParseAccountKind(kindText)
	if err != nil {
		m.say(messages.InvalidAccountType)
		return nil
	}

	input := usecase.CreateAccountInput{
		ID:             id,
		Holder:         holder,
		Kind:           string(kind),
		OpeningBalance: balance,
	}

	if kind == domain.AccountKindSavings {
		line, err := m.prompt("Enter interest rate (e.g., 0.01 for 1%): ")
		if err != nil {
			return err
		}

		// Blank keeps the configured default rate.
		if line != "" {
			rate, err := parseAmount(line)
			if err != nil {
				return err
			}
			input.InterestRate = &rate
		}
	}

	if _, err := m.accounts.CreateAccount(ctx, input); err != nil {
		m.say(messages.Describe(err, ""))
		return nil
	}

	m.say(messages.AccountCreated)
	return nil
}

func (m *Menu) deposit(ctx context.Context) error {
	id, amount, err := m.promptAccountAndAmount("Enter amount to deposit: ")
	if err != nil {
		return err
	}

	account, err := m.accounts.Deposit(ctx, id, amount)
	if err != nil {
		m.say(messages.Describe(err, "deposit"))
		return nil
	}

	m.say(messages.Deposited(amount, account.Balance))
	return nil
}

func (m *Menu) withdraw(ctx context.Context) error {
	id, amount, err := m.promptAccountAndAmount("Enter amount to withdraw: ")
	if err != nil {
		return err
	}

	account, err := m.accounts.Withdraw(ctx, id, amount)
	if err != nil {
		m.say(messages.Describe(err, "withdraw"))
		return nil
	}

	m.say(messages.Withdrew(amount, account.Balance))
	return nil
}

func (m *Menu) transfer(ctx context.Context) error {
	from, err := m.prompt("Enter from account number: ")
	if err != nil {
		return err
	}

	to, err := m.prompt("Enter to account number: ")
	if err != nil {
		return err
	}

	amount, err := m.promptAmount("Enter amount to transfer: ")
	if err != nil {
		return err
	}

	transaction, err := m.transactions.Execute(ctx, usecase.ExecuteTransactionInput{
		SourceAccountID:      from,
		DestinationAccountID: to,
		Amount:               amount,
	})
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		m.say(messages.AccountsNotFound)
	case err != nil:
		m.say(messages.TransactionFailed(err))
	default:
		m.say(messages.TransactionExecuted(transaction.ID))
	}

	return nil
}

func (m *Menu) calculateInterest(ctx context.Context) error {
	id, err := m.prompt("Enter account number: ")
	if err != nil {
		return err
	}

	result, err := m.accounts.CalculateInterest(ctx, id)
	if err != nil {
		m.say(messages.Describe(err, ""))
		return nil
	}

	m.say(messages.Interest(result))
	return nil
}

func (m *Menu) displayInfo(ctx context.Context) error {
	id, err := m.prompt("Enter account number: ")
	if err != nil {
		return err
	}

	info, err := m.accounts.DisplayAccountInfo(ctx, id)
	if err != nil {
		m.say(messages.Describe(err, ""))
		return nil
	}

	m.say(info.String())
	return nil
}

func (m *Menu) promptAccountAndAmount(amountPrompt string) (string, decimal.Decimal, error) {
	id, err := m.prompt("Enter account number: ")
	if err != nil {
		return "", decimal.Zero, err
	}

	amount, err := m.promptAmount(amountPrompt)
	if err != nil {
		return "", decimal.Zero, err
	}

	return id, amount, nil
}

func (m *Menu) promptAmount(text string) (decimal.Decimal, error) {
	line, err := m.prompt(text)
	if err != nil {
		return decimal.Zero, err
	}

	amount, err := parseAmount(line)
	if err != nil {
		m.logger.Debug().Str("input", line).Msg("rejected non-numeric input")
		return decimal.Zero, err
	}

	return amount, nil
}

func parseAmount(line string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(line)
	if err != nil || domain.ValidateAmountMagnitude(amount) != nil {
		return decimal.Zero, errBadNumber
	}
	return amount, nil
}

func (m *Menu) prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)

	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}

	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) say(line string) {
	fmt.Fprintln(m.out, line)
}
