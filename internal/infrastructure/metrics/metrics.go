package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// Metrics holds the banking Prometheus metrics and implements usecase.Recorder.
type Metrics struct {
	// Account metrics
	AccountsCreated   *prometheus.CounterVec
	AccountOperations *prometheus.CounterVec
	OperationErrors   *prometheus.CounterVec
	InterestTotal     prometheus.Counter

	// Transaction metrics
	TransactionAmounts prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_accounts_created_total",
				Help: "Total number of accounts created by kind",
			},
			[]string{"kind"},
		),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_operation_errors_total",
				Help: "Total rejected operations by type and error",
			},
			[]string{"operation", "error_type"},
		),
		InterestTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_interest_accrued_total",
			Help: "Sum of interest credited to savings accounts",
		}),
		TransactionAmounts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
	}
}

// AccountCreated counts a newly opened account.
func (m *Metrics) AccountCreated(kind domain.AccountKind) {
	m.AccountsCreated.WithLabelValues(string(kind)).Inc()
}

// OperationSucceeded counts a completed operation.
func (m *Metrics) OperationSucceeded(operation string) {
	m.AccountOperations.WithLabelValues(operation).Inc()
}

// OperationFailed counts a rejected operation by error kind.
func (m *Metrics) OperationFailed(operation string, err error) {
	m.OperationErrors.WithLabelValues(operation, ErrorType(err)).Inc()
}

// TransactionAmount observes the amount moved by a transaction.
func (m *Metrics) TransactionAmount(amount decimal.Decimal) {
	m.TransactionAmounts.Observe(amount.InexactFloat64())
}

// InterestAccrued adds credited interest.
func (m *Metrics) InterestAccrued(amount decimal.Decimal) {
	if amount.IsNegative() {
		return
	}
	m.InterestTotal.Add(amount.InexactFloat64())
}

// ErrorType maps an error to a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountExists):
		return "account_exists"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrInterestNotSupported):
		return "interest_not_supported"
	case errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidAccountID),
		errors.Is(err, domain.ErrInvalidHolderName),
		errors.Is(err, domain.ErrInvalidInterestRate):
		return "validation"
	default:
		return "internal"
	}
}
