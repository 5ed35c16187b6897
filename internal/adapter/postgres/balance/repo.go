// Package balance implements the Boost balance repository using PostgreSQL.
package balance

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Repo provides balance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new balance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT id, user_id, competition_id, balance, created_at, updated_at
FROM balances
WHERE user_id = $1 AND competition_id = $2`

const ensureSQL = `
INSERT INTO balances (user_id, competition_id)
VALUES ($1, $2)
ON CONFLICT (user_id, competition_id) DO NOTHING`

// lockSQL serializes concurrent writers to the same balance row. All ledger
// mutations take this lock first, so the read-check-write sequence on a
// balance never races against another transaction.
const lockSQL = `
SELECT id, user_id, competition_id, balance, created_at, updated_at
FROM balances
WHERE user_id = $1 AND competition_id = $2
FOR UPDATE`

const addSQL = `
UPDATE balances
SET balance = balance + $2, updated_at = now()
WHERE id = $1
RETURNING balance`

// Get returns the balance row for (userID, competitionID).
// Returns domain.ErrNotFound if the pair has never been credited.
func (r *Repo) Get(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, getSQL, userID, competitionID)
	b, err := scanBalance(row)
	if err != nil {
		return nil, mapError(err, userID)
	}
	return b, nil
}

// Ensure creates the balance row for (userID, competitionID) at zero if it
// does not exist yet. Safe to call concurrently; losers of the insert race
// are no-ops.
func (r *Repo) Ensure(ctx context.Context, userID, competitionID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, ensureSQL, userID, competitionID); err != nil {
		return mapError(err, userID)
	}
	return nil
}

// LockForUpdate loads the balance row under a row-level write lock.
// Must run inside a transaction (the lock is released at commit/rollback).
// Returns domain.ErrNotFound if no row exists.
func (r *Repo) LockForUpdate(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, lockSQL, userID, competitionID)
	b, err := scanBalance(row)
	if err != nil {
		return nil, mapError(err, userID)
	}
	return b, nil
}

// Add applies a signed delta to a balance row and returns the new balance.
// Callers are expected to hold the row lock via LockForUpdate; the CHECK
// constraint on the column is the last line of defense, not the primary
// sufficiency check.
func (r *Repo) Add(ctx context.Context, balanceID uuid.UUID, delta *big.Int) (*big.Int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n pgtype.Numeric
	err := q.QueryRow(ctx, addSQL, balanceID, postgres.NumericFromBig(delta)).Scan(&n)
	if err != nil {
		return nil, mapError(err, balanceID)
	}

	v, err := postgres.BigFromNumeric(n)
	if err != nil {
		return nil, mapError(err, balanceID)
	}
	return v, nil
}

// rowScanner matches both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBalance(row rowScanner) (*domain.Balance, error) {
	var (
		b domain.Balance
		n pgtype.Numeric
	)
	var createdAt, updatedAt time.Time
	if err := row.Scan(&b.ID, &b.UserID, &b.CompetitionID, &n, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	v, err := postgres.BigFromNumeric(n)
	if err != nil {
		return nil, err
	}
	b.Balance = v
	b.CreatedAt = createdAt
	b.UpdatedAt = updatedAt
	return &b, nil
}

func mapError(err error, id uuid.UUID) error {
	return postgres.MapError(err, "balance", id)
}
