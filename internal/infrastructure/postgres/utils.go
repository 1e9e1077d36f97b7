package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/user-admin-api/internal/domain"
)

// Querier lo cumplen *pgxpool.Pool, pgx.Tx y pgxmock; permite usar los repos con pool o tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
// Solo se mira el código SQLSTATE, nunca el texto del mensaje.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// infraError envuelve un fallo del driver como error de infraestructura tipado.
// El mensaje al cliente es genérico; la causa (con SQLSTATE) queda para el log.
func infraError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		cause := fmt.Errorf("%s: sqlstate %s: %w", op, pgErr.Code, err)
		if pgErr.Code == codeUndefinedTable {
			cause = fmt.Errorf("%s: esquema no inicializado (ejecutar migraciones): %w", op, err)
		}
		return domain.Infrastructure(cause)
	}
	return domain.Infrastructure(fmt.Errorf("%s: %w", op, err))
}
