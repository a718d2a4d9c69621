package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction moves money from one account to another.
// It is built, executed once and handed back to the caller; nothing stores it.
type Transaction struct {
	ID                   string
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	CreatedAt            time.Time
}

// Validate validates transaction request.
func (t *Transaction) Validate() error {
	if t.SourceAccountID == t.DestinationAccountID {
		return ErrSameAccount
	}

	return ValidateAmount(t.Amount)
}
