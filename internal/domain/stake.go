package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Stake is one record from the staking indexer's read-only feed.
// The ledger never mutates stakes; it only converts active ones into
// one-time Boost grants.
type Stake struct {
	ID         uuid.UUID
	Wallet     string
	Amount     *big.Int
	CreatedAt  time.Time
	UnstakedAt *time.Time
}

// Active reports whether the stake is still open (not unstaked).
func (s Stake) Active() bool { return s.UnstakedAt == nil }

// StakeAward records that a stake has been converted to Boost for one
// competition. (StakeID, CompetitionID) is unique; the presence of a row is
// the conversion idempotency guard, not the journal.
type StakeAward struct {
	ID            uuid.UUID
	StakeID       uuid.UUID
	CompetitionID uuid.UUID
	BaseAmount    *big.Int
	MultiplierBps int64
	ChangeID      uuid.UUID
	CreatedAt     time.Time
}

// AwardAmount computes the Boost granted for a staked base amount at the
// given multiplier, expressed in basis points (10000 = 1.0x). Integer math
// throughout: result = base * bps / 10000, truncated toward zero.
func AwardAmount(base *big.Int, multiplierBps int64) *big.Int {
	out := new(big.Int).Mul(base, big.NewInt(multiplierBps))
	return out.Quo(out, big.NewInt(10000))
}
