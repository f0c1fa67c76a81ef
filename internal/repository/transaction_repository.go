package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	var b insertBuilder

	// Required fields
	b.add("id", tx.ID)
	b.add("provider", string(tx.Provider))
	b.add("trid", tx.TRID)
	b.add("order_ref", tx.OrderRef)
	b.add("amount", tx.Amount)
	b.add("status", tx.Status)

	b.addIf("ptn", tx.PTN)
	b.addIf("phone", tx.Phone)
	b.addIf("error_message", tx.ErrorMessage)

	query := fmt.Sprintf(`
        INSERT INTO transactions (%s)
        VALUES (%s)`,
		strings.Join(b.fields, ", "),
		strings.Join(b.params, ", "),
	)

	if _, err := r.db.Exec(ctx, query, b.values...); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// FindByReference returns the latest attempt whose ptn or trid equals ref.
func (r *TransactionRepository) FindByReference(ctx context.Context, ref string) (*model.Transaction, error) {
	const rawsql = `
        SELECT id, provider, COALESCE(ptn, ''), trid, order_ref, amount,
               COALESCE(phone, ''), status, COALESCE(error_message, ''), created_at, updated_at
        FROM transactions
        WHERE ptn = $1 OR trid = $1
        ORDER BY created_at DESC
        LIMIT 1`

	var (
		tx       model.Transaction
		provider string
	)
	err := r.db.QueryRow(ctx, rawsql, ref).Scan(
		&tx.ID,
		&provider,
		&tx.PTN,
		&tx.TRID,
		&tx.OrderRef,
		&tx.Amount,
		&tx.Phone,
		&tx.Status,
		&tx.ErrorMessage,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", model.ErrTransactionNotFound, ref)
		}
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}
	tx.Provider = model.PaymentProvider(provider)
	return &tx, nil
}

var transactionFilterColumns = map[string]bool{
	"id":        true,
	"ptn":       true,
	"trid":      true,
	"order_ref": true,
	"provider":  true,
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, status string, errMessage string, filters map[string]interface{}) error {
	if len(filters) == 0 {
		return errors.New("at least one filter condition is required")
	}

	var (
		query strings.Builder
		args  []interface{}
		pos   = 3
	)

	query.WriteString(`UPDATE transactions SET status = $1, error_message = NULLIF($2, ''), updated_at = NOW() WHERE `)
	args = append(args, status, errMessage)

	conditions := make([]string, 0, len(filters))
	for _, field := range sortedKeys(filters) {
		if !transactionFilterColumns[field] {
			return fmt.Errorf("invalid column name: %s", field)
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", field, pos))
		args = append(args, filters[field])
		pos++
	}
	query.WriteString(strings.Join(conditions, " AND "))

	tag, err := r.db.Exec(ctx, query.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTransactionNotFound
	}
	return nil
}
