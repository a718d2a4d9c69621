package usecase

// Operation names used in logs and metrics.
const (
	OperationCreate      = "create"
	OperationDeposit     = "deposit"
	OperationWithdraw    = "withdraw"
	OperationTransaction = "transaction"
	OperationInterest    = "interest"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)
