package ports

import (
	"context"

	"github.com/badnails/TestProjectGateway/internal/domain"
)

type ValidateUserRequest struct {
	TransactionID domain.TransactionID
	Username      string
}

type ValidateUserResult struct {
	Success     bool
	Transaction *domain.TransactionDetails
	Message     string
}

type CompleteTransactionRequest struct {
	TransactionID domain.TransactionID
	Username      string
	PIN           string
}

type CompleteTransactionResult struct {
	Success bool
	Message string
}

// Gateway is the confirmation backend. A returned error means the request did
// not complete; a backend refusal is reported through Success.
type Gateway interface {
	ValidateUser(ctx context.Context, req ValidateUserRequest) (ValidateUserResult, error)
	CompleteTransaction(ctx context.Context, req CompleteTransactionRequest) (CompleteTransactionResult, error)
}
