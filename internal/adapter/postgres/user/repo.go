// Package user implements the wallet-to-user lookup using PostgreSQL.
// The ledger does not manage user lifecycles; this repository is read-only.
package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Repo provides user lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByWalletSQL = `
SELECT id, wallet, created_at, updated_at
FROM users
WHERE wallet = $1`

// GetByWallet returns the user owning the given wallet.
// Returns domain.ErrNotFound for unknown wallets.
func (r *Repo) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := q.QueryRow(ctx, getByWalletSQL, wallet).
		Scan(&u.ID, &u.Wallet, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return &u, nil
}
