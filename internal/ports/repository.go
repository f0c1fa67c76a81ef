package ports

import (
	"context"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

type IOrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByReference(ctx context.Context, ref string) (*model.Order, error)
	UpdatePayment(ctx context.Context, ref string, status model.PaymentStatus, method string) error
}

type ITransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	FindByReference(ctx context.Context, ref string) (*model.Transaction, error)
	UpdateStatus(ctx context.Context, status string, errMessage string, filters map[string]interface{}) error
}
