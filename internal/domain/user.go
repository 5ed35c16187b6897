package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal identity the ledger needs: the mapping from an
// on-chain wallet to the account that earns Boost from its stakes. User
// lifecycle is owned by an external collaborator.
type User struct {
	ID        uuid.UUID
	Wallet    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
