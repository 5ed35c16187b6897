package testhelper

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentarena/boost-ledger/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a unique wallet. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Wallet:    "0xwallet" + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, wallet, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Wallet, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedCompetition creates a competition and returns its id.
func SeedCompetition(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO competitions (id, name) VALUES ($1, $2)`,
		id, "Competition "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCompetition: %v", err)
	}
	return id
}

// SeedAgent creates an agent and returns its id.
func SeedAgent(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO agents (id, name) VALUES ($1, $2)`,
		id, "Agent "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAgent: %v", err)
	}
	return id
}

// SeedStake creates a stake row in the feed table for the given wallet.
// Pass a nil unstakedAt for an active stake.
func SeedStake(t *testing.T, pool *pgxpool.Pool, wallet string, amount *big.Int, unstakedAt *time.Time) domain.Stake {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	stake := domain.Stake{
		ID:         uuid.New(),
		Wallet:     wallet,
		Amount:     amount,
		CreatedAt:  now,
		UnstakedAt: unstakedAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO stakes (id, wallet, amount, created_at, unstaked_at)
		 VALUES ($1, $2, $3::numeric, $4, $5)`,
		stake.ID, stake.Wallet, stake.Amount.String(), stake.CreatedAt, stake.UnstakedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedStake: %v", err)
	}
	return stake
}
