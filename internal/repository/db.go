package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable is satisfied by *pgxpool.Pool, pgx.Tx and the mock pool used in tests.
type Queryable interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

type DB interface {
	Queryable
	Begin(ctx context.Context) (pgx.Tx, error)
}

// insertBuilder collects columns and positional parameters for an INSERT.
type insertBuilder struct {
	fields []string
	values []interface{}
	params []string
}

func (b *insertBuilder) add(field string, value interface{}) {
	b.fields = append(b.fields, field)
	b.values = append(b.values, value)
	b.params = append(b.params, placeholder(len(b.values)))
}

// addIf adds an optional column only when value is non-empty.
func (b *insertBuilder) addIf(field string, value string) {
	if value != "" {
		b.add(field, value)
	}
}

func placeholder(pos int) string {
	return fmt.Sprintf("$%d", pos)
}

// sortedKeys keeps generated SQL stable across map iterations.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
