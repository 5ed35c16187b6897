package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Balance is a user's spendable Boost within one competition.
// One row per (UserID, CompetitionID); the amount is never negative.
type Balance struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CompetitionID uuid.UUID
	Balance       *big.Int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChangeEntry is one immutable journal record of a signed balance mutation.
// Delta is positive for credits and negative for debits. (BalanceID,
// IdempotencyKey) is unique: a given key is applied at most once per balance.
type ChangeEntry struct {
	ID             uuid.UUID
	BalanceID      uuid.UUID
	Delta          *big.Int
	IdempotencyKey string
	Metadata       map[string]any
	CreatedAt      time.Time
}

// CompetitionDebit is a published journal read: one debit entry for a
// competition together with the user who spent it. Consumed by reward
// computation collaborators.
type CompetitionDebit struct {
	ChangeID  uuid.UUID
	UserID    uuid.UUID
	Delta     *big.Int
	CreatedAt time.Time
}

// AgentAggregate is the total Boost directed at one competition entrant,
// summed across all users. One row per (AgentID, CompetitionID).
type AgentAggregate struct {
	ID            uuid.UUID
	AgentID       uuid.UUID
	CompetitionID uuid.UUID
	Total         *big.Int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApplyResult is the outcome of a ledger mutation.
// Applied reports whether the operation was newly applied; a replayed
// idempotency key yields Applied == false with the current balance and no
// new journal entry.
type ApplyResult struct {
	Applied  bool
	Balance  *big.Int
	ChangeID uuid.UUID
}

// NewAmount is a convenience constructor for amounts that fit in an int64.
// Amounts in general are arbitrary-precision: production values exceed 2^63.
func NewAmount(v int64) *big.Int { return big.NewInt(v) }

// IsPositiveAmount reports whether a is a usable operation amount (> 0).
func IsPositiveAmount(a *big.Int) bool {
	return a != nil && a.Sign() > 0
}
