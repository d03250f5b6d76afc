package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// patchBuilder accumulates SET clauses for a partial-field update.
type patchBuilder struct {
	sets []string
	args []any
}

func (b *patchBuilder) set(column string, value any) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *patchBuilder) setRaw(clause string) {
	b.sets = append(b.sets, clause)
}

func (b *patchBuilder) arg(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

func (b *patchBuilder) empty() bool { return len(b.sets) == 0 }

func (b *patchBuilder) clause() string { return strings.Join(b.sets, ", ") }
