// Package mocks holds testify mocks of the ports interfaces for use in tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) FindByReference(ctx context.Context, ref string) (*model.Order, error) {
	args := m.Called(ctx, ref)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) UpdatePayment(ctx context.Context, ref string, status model.PaymentStatus, method string) error {
	return m.Called(ctx, ref, status, method).Error(0)
}

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *TransactionRepository) FindByReference(ctx context.Context, ref string) (*model.Transaction, error) {
	args := m.Called(ctx, ref)
	tx, _ := args.Get(0).(*model.Transaction)
	return tx, args.Error(1)
}

func (m *TransactionRepository) UpdateStatus(ctx context.Context, status string, errMessage string, filters map[string]interface{}) error {
	return m.Called(ctx, status, errMessage, filters).Error(0)
}

type Messenger struct {
	mock.Mock
}

func (m *Messenger) SendText(ctx context.Context, to, body string) error {
	return m.Called(ctx, to, body).Error(0)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, email model.Email) error {
	return m.Called(ctx, email).Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event model.PaymentStatusEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *EventPublisher) Close() error {
	return m.Called().Error(0)
}

type PaymentProcessor struct {
	mock.Mock
	Provider model.PaymentProvider
}

func (m *PaymentProcessor) Name() model.PaymentProvider {
	return m.Provider
}

func (m *PaymentProcessor) Initiate(ctx context.Context, req model.PaymentRequest) (*model.PaymentProcessorResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*model.PaymentProcessorResponse)
	return res, args.Error(1)
}

// VerifyingProcessor is a PaymentProcessor that also supports status checks.
type VerifyingProcessor struct {
	PaymentProcessor
}

func (m *VerifyingProcessor) VerifyTransaction(ctx context.Context, ptn, trid string) (*model.TransactionStatus, error) {
	args := m.Called(ctx, ptn, trid)
	st, _ := args.Get(0).(*model.TransactionStatus)
	return st, args.Error(1)
}
