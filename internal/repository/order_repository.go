package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	var b insertBuilder

	b.add("id", order.ID)
	b.add("order_ref", order.OrderRef)
	b.add("card_type", order.CardType)
	b.add("customer_name", order.CustomerName)
	b.add("email", order.Email)
	b.add("phone", order.Phone)
	b.add("delivery_option", order.DeliveryOption)
	b.add("card_price", order.CardPrice)
	b.add("delivery_fee", order.DeliveryFee)
	b.add("niu_fee", order.NIUFee)
	b.add("total", order.Total)
	b.add("payment_status", string(order.PaymentStatus))

	b.addIf("niu", order.NIU)
	b.addIf("delivery_address", order.DeliveryAddress)
	b.addIf("payment_method", order.PaymentMethod)

	query := fmt.Sprintf(`
        INSERT INTO orders (%s)
        VALUES (%s)`,
		strings.Join(b.fields, ", "),
		strings.Join(b.params, ", "),
	)

	if _, err := r.db.Exec(ctx, query, b.values...); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderRef, err)
	}
	return nil
}

func (r *OrderRepository) FindByReference(ctx context.Context, ref string) (*model.Order, error) {
	const rawsql = `
        SELECT id, order_ref, card_type, customer_name, email, phone,
               COALESCE(niu, ''), delivery_option, COALESCE(delivery_address, ''),
               card_price, delivery_fee, niu_fee, total,
               payment_status, COALESCE(payment_method, ''), created_at, updated_at
        FROM orders WHERE order_ref = $1`

	var (
		order  model.Order
		status string
	)
	err := r.db.QueryRow(ctx, rawsql, ref).Scan(
		&order.ID,
		&order.OrderRef,
		&order.CardType,
		&order.CustomerName,
		&order.Email,
		&order.Phone,
		&order.NIU,
		&order.DeliveryOption,
		&order.DeliveryAddress,
		&order.CardPrice,
		&order.DeliveryFee,
		&order.NIUFee,
		&order.Total,
		&status,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", model.ErrOrderNotFound, ref)
		}
		return nil, fmt.Errorf("error getting order: %w", err)
	}
	order.PaymentStatus = model.PaymentStatus(status)
	return &order, nil
}

// UpdatePayment overwrites the payment status; an empty method leaves the
// stored payment_method untouched.
func (r *OrderRepository) UpdatePayment(ctx context.Context, ref string, status model.PaymentStatus, method string) error {
	const rawsql = `
        UPDATE orders
        SET payment_status = $1,
            payment_method = COALESCE(NULLIF($2, ''), payment_method),
            updated_at = NOW()
        WHERE order_ref = $3`

	tag, err := r.db.Exec(ctx, rawsql, string(status), method, ref)
	if err != nil {
		return fmt.Errorf("failed to update order payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", model.ErrOrderNotFound, ref)
	}
	return nil
}
