// Package aggregate implements the per-agent Boost total repository using
// PostgreSQL.
package aggregate

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Repo provides agent aggregate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new aggregate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// addSQL creates the aggregate row lazily and increments it atomically in
// one statement, so concurrent boosts of the same agent never lose updates.
const addSQL = `
INSERT INTO agent_totals (agent_id, competition_id, total)
VALUES ($1, $2, $3)
ON CONFLICT (agent_id, competition_id)
DO UPDATE SET total = agent_totals.total + EXCLUDED.total, updated_at = now()
RETURNING id`

const linkSQL = `
INSERT INTO agent_total_links (aggregate_id, change_id)
VALUES ($1, $2)`

const getSQL = `
SELECT id, agent_id, competition_id, total, created_at, updated_at
FROM agent_totals
WHERE agent_id = $1 AND competition_id = $2`

const totalsSQL = `
SELECT agent_id, total
FROM agent_totals
WHERE competition_id = $1`

const sumLinkedSQL = `
SELECT COALESCE(sum(-c.delta), 0)
FROM agent_total_links l
JOIN boost_changes c ON c.id = l.change_id
WHERE l.aggregate_id = $1`

// AddToTotal credits an agent's total within a competition, creating the
// aggregate row at zero on first use, and returns the aggregate id.
func (r *Repo) AddToTotal(ctx context.Context, agentID, competitionID uuid.UUID, amount *big.Int) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	err := q.QueryRow(ctx, addSQL, agentID, competitionID, postgres.NumericFromBig(amount)).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "agent_total", agentID)
	}
	return id, nil
}

// Link records that a journal entry has been reflected in an aggregate.
// The primary key on (aggregate_id, change_id) makes the aggregate side of
// a boost idempotent in lockstep with the journal side; callers only reach
// this after a newly-applied journal insert, so a conflict here is a bug.
func (r *Repo) Link(ctx context.Context, aggregateID, changeID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, linkSQL, aggregateID, changeID); err != nil {
		return postgres.MapError(err, "agent_total_link", changeID)
	}
	return nil
}

// Get returns the aggregate row for (agentID, competitionID).
// Returns domain.ErrNotFound if the agent has never been boosted there.
func (r *Repo) Get(ctx context.Context, agentID, competitionID uuid.UUID) (*domain.AgentAggregate, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		a domain.AgentAggregate
		n pgtype.Numeric
	)
	err := q.QueryRow(ctx, getSQL, agentID, competitionID).
		Scan(&a.ID, &a.AgentID, &a.CompetitionID, &n, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "agent_total", agentID)
	}

	a.Total, err = postgres.BigFromNumeric(n)
	if err != nil {
		return nil, postgres.MapError(err, "agent_total", agentID)
	}
	return &a, nil
}

// TotalsByCompetition returns every agent's Boost total for a competition.
// Unknown competitions yield an empty map.
func (r *Repo) TotalsByCompetition(ctx context.Context, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, totalsSQL, competitionID)
	if err != nil {
		return nil, postgres.MapError(err, "agent_total", competitionID)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*big.Int)
	for rows.Next() {
		var (
			agentID uuid.UUID
			n       pgtype.Numeric
		)
		if err := rows.Scan(&agentID, &n); err != nil {
			return nil, postgres.MapError(err, "agent_total", competitionID)
		}
		v, err := postgres.BigFromNumeric(n)
		if err != nil {
			return nil, postgres.MapError(err, "agent_total", competitionID)
		}
		out[agentID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "agent_total", competitionID)
	}
	return out, nil
}

// SumLinked returns the sum of journal debit magnitudes linked to an
// aggregate. Reconciliation: the result must always equal the total column.
func (r *Repo) SumLinked(ctx context.Context, aggregateID uuid.UUID) (*big.Int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n pgtype.Numeric
	if err := q.QueryRow(ctx, sumLinkedSQL, aggregateID).Scan(&n); err != nil {
		return nil, postgres.MapError(err, "agent_total", aggregateID)
	}
	v, err := postgres.BigFromNumeric(n)
	if err != nil {
		return nil, postgres.MapError(err, "agent_total", aggregateID)
	}
	return v, nil
}
