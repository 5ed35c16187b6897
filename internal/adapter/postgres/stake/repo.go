// Package stake implements read access to the staking indexer's feed and
// persistence for stake-to-Boost conversion awards.
package stake

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Repo provides stake feed reads and stake award persistence.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stake repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// unawardedSQL selects a wallet's active stakes that have no award row for
// the given competition, newest first. Awards are scoped per competition: a
// stake already converted for another competition is still eligible here.
const unawardedSQL = `
SELECT s.id, s.wallet, s.amount, s.created_at, s.unstaked_at
FROM stakes s
WHERE s.wallet = $1
  AND s.unstaked_at IS NULL
  AND NOT EXISTS (
      SELECT 1 FROM stake_awards a
      WHERE a.stake_id = s.id AND a.competition_id = $2
  )
ORDER BY s.created_at DESC`

// recordAwardSQL is idempotent on (stake_id, competition_id): the conflict
// outcome, not a pre-check, decides whether the stake was already converted.
const recordAwardSQL = `
INSERT INTO stake_awards (stake_id, competition_id, base_amount, multiplier_bps, change_id)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (stake_id, competition_id) DO NOTHING
RETURNING id`

const getAwardSQL = `
SELECT id, stake_id, competition_id, base_amount, multiplier_bps, change_id, created_at
FROM stake_awards
WHERE stake_id = $1 AND competition_id = $2`

// UnawardedStakes returns the wallet's active stakes still eligible for
// conversion in the given competition, most recently created first.
func (r *Repo) UnawardedStakes(ctx context.Context, wallet string, competitionID uuid.UUID) ([]domain.Stake, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, unawardedSQL, wallet, competitionID)
	if err != nil {
		return nil, postgres.MapError(err, "stake", competitionID)
	}
	defer rows.Close()

	var out []domain.Stake
	for rows.Next() {
		var (
			s domain.Stake
			n pgtype.Numeric
		)
		if err := rows.Scan(&s.ID, &s.Wallet, &n, &s.CreatedAt, &s.UnstakedAt); err != nil {
			return nil, postgres.MapError(err, "stake", competitionID)
		}
		s.Amount, err = postgres.BigFromNumeric(n)
		if err != nil {
			return nil, postgres.MapError(err, "stake", competitionID)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "stake", competitionID)
	}
	return out, nil
}

// RecordAward inserts the conversion record for (stake, competition).
// Returns domain.ErrDuplicateAward when the pair already exists; callers
// run this in the same transaction as the Boost credit, so rolling back on
// the duplicate also rolls back the credit and nothing is double-applied.
func (r *Repo) RecordAward(ctx context.Context, award domain.StakeAward) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	err := q.QueryRow(ctx, recordAwardSQL,
		award.StakeID,
		award.CompetitionID,
		postgres.NumericFromBig(award.BaseAmount),
		award.MultiplierBps,
		award.ChangeID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.ErrDuplicateAward
	}
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "stake_award", award.StakeID)
	}
	return id, nil
}

// GetAward returns the conversion record for (stakeID, competitionID).
// Returns domain.ErrNotFound if the stake has not been converted there.
func (r *Repo) GetAward(ctx context.Context, stakeID, competitionID uuid.UUID) (*domain.StakeAward, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		a domain.StakeAward
		n pgtype.Numeric
	)
	err := q.QueryRow(ctx, getAwardSQL, stakeID, competitionID).
		Scan(&a.ID, &a.StakeID, &a.CompetitionID, &n, &a.MultiplierBps, &a.ChangeID, &a.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "stake_award", stakeID)
	}

	a.BaseAmount, err = postgres.BigFromNumeric(n)
	if err != nil {
		return nil, postgres.MapError(err, "stake_award", stakeID)
	}
	return &a, nil
}
