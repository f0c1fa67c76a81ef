package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestOrderRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	order := &model.Order{
		ID:             "0b6f3c1e-7d1f-4c1a-9d55-3c2d2f7e9a10",
		OrderRef:       "LTC-8F2A1C3D",
		CardType:       "premium",
		CustomerName:   "Awa Ndiaye",
		Email:          "awa@example.cm",
		Phone:          "677123456",
		DeliveryOption: "standard",
		CardPrice:      25000,
		DeliveryFee:    2000,
		Total:          27000,
		PaymentStatus:  model.StatusNotPaid,
	}

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(order.ID, order.OrderRef, "premium", "Awa Ndiaye", "awa@example.cm", "677123456",
			"standard", int64(25000), int64(2000), int64(0), int64(27000), "NOT_PAID").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryFindByReference(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	columns := []string{"id", "order_ref", "card_type", "customer_name", "email", "phone", "niu",
		"delivery_option", "delivery_address", "card_price", "delivery_fee", "niu_fee", "total",
		"payment_status", "payment_method", "created_at", "updated_at"}

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE order_ref").
		WithArgs("LTC-8F2A1C3D").
		WillReturnRows(pgxmock.NewRows(columns).AddRow(
			"id-1", "LTC-8F2A1C3D", "premium", "Awa Ndiaye", "awa@example.cm", "677123456", "",
			"standard", "Bonapriso, Douala", int64(25000), int64(2000), int64(0), int64(27000),
			"PENDING", "mobile_money_mtn", now, now,
		))

	order, err := repo.FindByReference(context.Background(), "LTC-8F2A1C3D")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, order.PaymentStatus)
	assert.Equal(t, int64(27000), order.Total)
	assert.Equal(t, "mobile_money_mtn", order.PaymentMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryFindByReferenceNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE order_ref").
		WithArgs("LTC-MISSING").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByReference(context.Background(), "LTC-MISSING")
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))
}

func TestOrderRepositoryUpdatePayment(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepository(mock)

	mock.ExpectExec("UPDATE orders").
		WithArgs("SUCCESS", "enkap", "LTC-8F2A1C3D").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE orders").
		WithArgs("FAILED", "", "LTC-GONE").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdatePayment(context.Background(), "LTC-8F2A1C3D", model.StatusSuccess, "enkap"))

	err := repo.UpdatePayment(context.Background(), "LTC-GONE", model.StatusFailed, "")
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	mock := newMock(t)

	mock.ExpectBegin()
	for range migrations {
		mock.ExpectExec("CREATE").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}
	mock.ExpectCommit()
	mock.ExpectRollback()

	require.NoError(t, Migrate(context.Background(), mock))
}
