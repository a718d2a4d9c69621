package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountID    = errors.New("invalid account number")
	ErrInvalidHolderName   = errors.New("invalid account holder name")
	ErrInvalidInterestRate = errors.New("invalid interest rate")

	// ErrEmptyValue is wrapped alongside the field error when a required value is blank.
	ErrEmptyValue = errors.New("cannot be empty")
)

// Validation constants
const (
	MaxAccountIDLength  = 64
	MaxHolderNameLength = 255

	// MaxAmountExponent bounds the decimal exponent of amounts and rates in both directions.
	MaxAmountExponent = 18
	// MaxAmountBits bounds the coefficient of amounts and rates, roughly 38 decimal digits.
	MaxAmountBits = 128
)

// DefaultInterestRate applies to savings accounts opened without an explicit rate.
var DefaultInterestRate = decimal.RequireFromString("0.01")

// ValidateAccountID validates an account number
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAccountID, ErrEmptyValue)
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidAccountID, MaxAccountIDLength)
	}

	if strings.ContainsAny(id, " \t\r\n/") {
		return fmt.Errorf("%w: contains whitespace or slashes", ErrInvalidAccountID)
	}

	return nil
}

// ValidateHolderName validates the account holder name
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHolderName, ErrEmptyValue)
	}

	if len(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidateAmountMagnitude rejects numbers whose exponent or coefficient is out of bounds.
// It reads the representation directly because any comparison would rescale first.
func ValidateAmountMagnitude(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > MaxAmountExponent || exp < -MaxAmountExponent {
		return fmt.Errorf("%w: exponent %d is out of range", ErrInvalidAmount, exp)
	}

	if d.Coefficient().BitLen() > MaxAmountBits {
		return fmt.Errorf("%w: too many digits", ErrInvalidAmount)
	}

	return nil
}

// ValidateAmount validates a deposit, withdrawal or transfer amount
func ValidateAmount(amount decimal.Decimal) error {
	if err := ValidateAmountMagnitude(amount); err != nil {
		return err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// ValidateOpeningBalance allows zero but never a negative balance
func ValidateOpeningBalance(balance decimal.Decimal) error {
	if err := ValidateAmountMagnitude(balance); err != nil {
		return err
	}

	if balance.IsNegative() {
		return fmt.Errorf("%w: opening balance cannot be negative", ErrInvalidAmount)
	}

	return nil
}

// ValidateInterestRate accepts fractions between 0 and 1 inclusive
func ValidateInterestRate(rate decimal.Decimal) error {
	if ValidateAmountMagnitude(rate) != nil {
		return fmt.Errorf("%w: out of range", ErrInvalidInterestRate)
	}

	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: %s is outside [0, 1]", ErrInvalidInterestRate, rate)
	}

	return nil
}
