package ports

import (
	"context"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

// Raw provider statuses as they appear on the wire.
const (
	S3PSuccess = "SUCCESS"
	S3PFailed  = "FAILED"
	S3PErrored = "ERRORED"
	S3PPending = "PENDING"

	EnkapCompleted = "COMPLETED"
	EnkapFailed    = "FAILED"
	EnkapCancelled = "CANCELLED"
	EnkapPending   = "PENDING"
)

type IPaymentProcessor interface {
	Name() model.PaymentProvider
	Initiate(ctx context.Context, req model.PaymentRequest) (*model.PaymentProcessorResponse, error)
}

// ITransactionVerifier is implemented by providers that can be polled for the
// status of a previous attempt.
type ITransactionVerifier interface {
	VerifyTransaction(ctx context.Context, ptn, trid string) (*model.TransactionStatus, error)
}
