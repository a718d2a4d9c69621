package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAccountKind(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountKind
		wantErr bool
	}{
		{"savings", AccountKindSavings, false},
		{"Checking", AccountKindChecking, false},
		{" SAVINGS ", AccountKindSavings, false},
		{"brokerage", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAccountKind(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAccountType) {
				t.Fatalf("ParseAccountKind(%q): expected ErrInvalidAccountType, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseAccountKind(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		expectError error
	}{
		{
			name:        "positive amount",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(50),
			wantBalance: decimal.NewFromInt(150),
		},
		{
			name:        "fractional amount",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.RequireFromString("0.25"),
			wantBalance: decimal.RequireFromString("100.25"),
		},
		{
			name:        "zero amount rejected",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.Zero,
			wantBalance: decimal.NewFromInt(100),
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount rejected",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(-10),
			wantBalance: decimal.NewFromInt(100),
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{ID: "001", Balance: tt.balance}

			err := acc.Deposit(tt.amount)

			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}
			if !acc.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		wantBalance decimal.Decimal
		expectError error
	}{
		{
			name:        "withdraw less than balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(30),
			wantBalance: decimal.NewFromInt(70),
		},
		{
			name:        "withdraw exact balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(100),
			wantBalance: decimal.Zero,
		},
		{
			name:        "withdraw more than balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(150),
			wantBalance: decimal.NewFromInt(100),
			expectError: ErrInsufficientFunds,
		},
		{
			name:        "zero amount",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.Zero,
			wantBalance: decimal.NewFromInt(100),
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount on empty account",
			balance:     decimal.Zero,
			amount:      decimal.NewFromInt(-5),
			wantBalance: decimal.Zero,
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{ID: "001", Holder: "Alice", Balance: tt.balance}

			err := acc.Withdraw(tt.amount)

			if !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}
			if !acc.Balance.Equal(tt.wantBalance) {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, acc.Balance)
			}
		})
	}
}

func TestAccount_WithdrawInsufficientFundsCarriesBalance(t *testing.T) {
	acc := &Account{ID: "001", Holder: "Alice", Balance: decimal.NewFromInt(100)}

	err := acc.Withdraw(decimal.NewFromInt(150))

	var insufficient *InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %T", err)
	}
	if !insufficient.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected reported balance 100, got %s", insufficient.Balance)
	}
	if insufficient.Error() != "insufficient funds. Available balance is 100" {
		t.Errorf("unexpected message %q", insufficient.Error())
	}
}

func TestAccount_CalculateInterest(t *testing.T) {
	acc := &Account{
		ID:           "002",
		Kind:         AccountKindSavings,
		Balance:      decimal.NewFromInt(1000),
		InterestRate: decimal.RequireFromString("0.05"),
	}

	result, err := acc.CalculateInterest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Interest.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected interest 50, got %s", result.Interest)
	}
	if !acc.Balance.Equal(decimal.NewFromInt(1050)) {
		t.Errorf("expected balance 1050, got %s", acc.Balance)
	}

	// a second call compounds
	if _, err := acc.CalculateInterest(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("1102.5")) {
		t.Errorf("expected balance 1102.5, got %s", acc.Balance)
	}
}

func TestAccount_CalculateInterestCheckingRejected(t *testing.T) {
	acc := &Account{ID: "003", Kind: AccountKindChecking, Balance: decimal.NewFromInt(1000)}

	if _, err := acc.CalculateInterest(); !errors.Is(err, ErrInterestNotSupported) {
		t.Fatalf("expected ErrInterestNotSupported, got %v", err)
	}
	if !acc.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("balance changed to %s", acc.Balance)
	}
}

func TestAccount_Info(t *testing.T) {
	acc := &Account{ID: "001", Holder: "Alice", Kind: AccountKindChecking, Balance: decimal.NewFromInt(100)}

	info := acc.Info()

	want := "Account Number: 001, Account Holder: Alice, Balance: 100"
	if info.String() != want {
		t.Errorf("expected %q, got %q", want, info.String())
	}
	if !acc.GetBalance().Equal(decimal.NewFromInt(100)) {
		t.Errorf("GetBalance changed state")
	}
}
