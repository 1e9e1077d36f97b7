package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/user-admin-api/internal/application/usecase"
	"github.com/jhoicas/user-admin-api/internal/domain/repository"
)

var _ usecase.UserTxRunner = (*TxRunner)(nil)

// txBeginner lo cumplen *pgxpool.Pool y pgxmock.PgxPoolIface.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: pool}
}

// RunUsers inicia una transacción, ejecuta fn con un UserRepository atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunUsers(ctx context.Context, fn func(repo repository.UserRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return infraError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return infraError("commit transaction", fmt.Errorf("users: %w", err))
	}
	return nil
}
