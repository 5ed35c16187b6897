// Package journal implements the Boost change journal repository using
// PostgreSQL. The journal is append-only: rows are inserted exactly once
// and never updated. Simple queries use raw SQL; the filtered listing uses
// squirrel because its shape depends on the caller's filter.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Repo provides journal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new journal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// insertSQL is the replay arbiter. ON CONFLICT DO NOTHING makes the insert
// itself decide whether the (balance, key) pair was already applied; a
// pre-check read would race under concurrent retries of the same request.
const insertSQL = `
INSERT INTO boost_changes (balance_id, delta, idempotency_key, metadata)
VALUES ($1, $2, $3, $4)
ON CONFLICT (balance_id, idempotency_key) DO NOTHING
RETURNING id`

const userBoostsSQL = `
SELECT t.agent_id, sum(-c.delta)
FROM boost_changes c
JOIN balances b ON b.id = c.balance_id
JOIN agent_total_links l ON l.change_id = c.id
JOIN agent_totals t ON t.id = l.aggregate_id
WHERE b.user_id = $1 AND b.competition_id = $2 AND c.delta < 0
GROUP BY t.agent_id`

const competitionDebitsSQL = `
SELECT c.id, b.user_id, c.delta, c.created_at
FROM boost_changes c
JOIN balances b ON b.id = c.balance_id
WHERE b.competition_id = $1 AND c.delta < 0
ORDER BY c.created_at`

const sumByBalanceSQL = `
SELECT COALESCE(sum(delta), 0) FROM boost_changes WHERE balance_id = $1`

// Insert appends a journal entry. Returns (id, true) when the entry was
// newly created and (uuid.Nil, false) when the (balanceID, key) pair was
// already applied; the caller must treat the latter as a replay and skip
// every side effect gated on this entry.
func (r *Repo) Insert(ctx context.Context, balanceID uuid.UUID, delta *big.Int, key string, metadata map[string]any) (uuid.UUID, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var meta []byte
	if metadata != nil {
		var err error
		meta, err = json.Marshal(metadata)
		if err != nil {
			return uuid.Nil, false, fmt.Errorf("marshal metadata: %w", err)
		}
	}

	var id uuid.UUID
	err := q.QueryRow(ctx, insertSQL, balanceID, postgres.NumericFromBig(delta), key, meta).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, postgres.MapError(err, "boost_change", balanceID)
	}
	return id, true, nil
}

// UserBoosts returns how much Boost a user has spent on each agent within a
// competition. Derived from the journal through the link table, never read
// from a separately maintained map, so it cannot drift from the journal.
// Unknown identities yield an empty map.
func (r *Repo) UserBoosts(ctx context.Context, userID, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, userBoostsSQL, userID, competitionID)
	if err != nil {
		return nil, postgres.MapError(err, "boost_change", userID)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*big.Int)
	for rows.Next() {
		var (
			agentID uuid.UUID
			n       pgtype.Numeric
		)
		if err := rows.Scan(&agentID, &n); err != nil {
			return nil, postgres.MapError(err, "boost_change", userID)
		}
		v, err := postgres.BigFromNumeric(n)
		if err != nil {
			return nil, postgres.MapError(err, "boost_change", userID)
		}
		out[agentID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "boost_change", userID)
	}
	return out, nil
}

// CompetitionDebits returns every debit entry for a competition with the
// spending user and timestamp, oldest first. This is the journal surface
// consumed by reward computation.
func (r *Repo) CompetitionDebits(ctx context.Context, competitionID uuid.UUID) ([]domain.CompetitionDebit, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, competitionDebitsSQL, competitionID)
	if err != nil {
		return nil, postgres.MapError(err, "boost_change", competitionID)
	}
	defer rows.Close()

	var out []domain.CompetitionDebit
	for rows.Next() {
		var (
			d domain.CompetitionDebit
			n pgtype.Numeric
		)
		if err := rows.Scan(&d.ChangeID, &d.UserID, &n, &d.CreatedAt); err != nil {
			return nil, postgres.MapError(err, "boost_change", competitionID)
		}
		d.Delta, err = postgres.BigFromNumeric(n)
		if err != nil {
			return nil, postgres.MapError(err, "boost_change", competitionID)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "boost_change", competitionID)
	}
	return out, nil
}

// SumByBalance returns the sum of all journal deltas for a balance.
// Used by reconciliation checks: the sum must always equal the balance row.
func (r *Repo) SumByBalance(ctx context.Context, balanceID uuid.UUID) (*big.Int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n pgtype.Numeric
	if err := q.QueryRow(ctx, sumByBalanceSQL, balanceID).Scan(&n); err != nil {
		return nil, postgres.MapError(err, "boost_change", balanceID)
	}
	v, err := postgres.BigFromNumeric(n)
	if err != nil {
		return nil, postgres.MapError(err, "boost_change", balanceID)
	}
	return v, nil
}

// ListFilter narrows ListChanges. Zero-valued fields are ignored.
type ListFilter struct {
	UserID        uuid.UUID
	CompetitionID uuid.UUID
	DebitsOnly    bool
	CreditsOnly   bool
	From          time.Time
	To            time.Time
	Limit         uint64
}

// ListChanges returns journal entries matching the filter, newest first.
func (r *Repo) ListChanges(ctx context.Context, filter ListFilter) ([]domain.ChangeEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select("c.id", "c.balance_id", "c.delta", "c.idempotency_key", "c.metadata", "c.created_at").
		From("boost_changes c").
		Join("balances b ON b.id = c.balance_id").
		OrderBy("c.created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.UserID != uuid.Nil {
		builder = builder.Where(sq.Eq{"b.user_id": filter.UserID})
	}
	if filter.CompetitionID != uuid.Nil {
		builder = builder.Where(sq.Eq{"b.competition_id": filter.CompetitionID})
	}
	if filter.DebitsOnly {
		builder = builder.Where("c.delta < 0")
	}
	if filter.CreditsOnly {
		builder = builder.Where("c.delta > 0")
	}
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"c.created_at": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"c.created_at": filter.To})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "boost_change", filter.UserID)
	}
	defer rows.Close()

	var out []domain.ChangeEntry
	for rows.Next() {
		entry, err := scanChange(rows)
		if err != nil {
			return nil, postgres.MapError(err, "boost_change", filter.UserID)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "boost_change", filter.UserID)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChange(row rowScanner) (*domain.ChangeEntry, error) {
	var (
		e    domain.ChangeEntry
		n    pgtype.Numeric
		meta []byte
	)
	if err := row.Scan(&e.ID, &e.BalanceID, &n, &e.IdempotencyKey, &meta, &e.CreatedAt); err != nil {
		return nil, err
	}

	v, err := postgres.BigFromNumeric(n)
	if err != nil {
		return nil, err
	}
	e.Delta = v

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &e.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &e, nil
}
