package ledger

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/domain"
)

// ChangeInput describes one balance mutation (credit or debit).
//
// IdempotencyKey is optional. When empty, a random nonce is generated per
// call, so logically-distinct calls never collide, but the call then has
// no replay protection, and a network-level retry will apply twice.
type ChangeInput struct {
	UserID         uuid.UUID
	CompetitionID  uuid.UUID
	Amount         *big.Int
	IdempotencyKey string
	Metadata       map[string]any
}

// Validate checks the input synchronously, before any I/O.
func (in ChangeInput) Validate() error {
	if in.UserID == uuid.Nil {
		return domain.NewValidationError("user_id", "is required")
	}
	if in.CompetitionID == uuid.Nil {
		return domain.NewValidationError("competition_id", "is required")
	}
	if !domain.IsPositiveAmount(in.Amount) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// key returns the supplied idempotency key, or a fresh random nonce.
func (in ChangeInput) key() string {
	if in.IdempotencyKey != "" {
		return in.IdempotencyKey
	}
	return uuid.NewString()
}

// BoostInput describes a boost: a debit of the user's balance credited to
// an agent's total in the same transaction.
type BoostInput struct {
	ChangeInput
	AgentID uuid.UUID
}

// Validate checks the input synchronously, before any I/O.
func (in BoostInput) Validate() error {
	if in.AgentID == uuid.Nil {
		return domain.NewValidationError("agent_id", "is required")
	}
	return in.ChangeInput.Validate()
}
