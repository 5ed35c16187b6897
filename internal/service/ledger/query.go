package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/adapter/postgres/journal"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// Read-only projections. All of them run against whatever querier the
// context carries, so a caller inside a transaction gets read-your-writes
// consistency with its own preceding mutations. Unknown identities yield
// zero values, never errors.

// UserBoostBalance returns the user's current Boost balance in a
// competition, or zero if no balance row exists.
func (s *Service) UserBoostBalance(ctx context.Context, userID, competitionID uuid.UUID) (*big.Int, error) {
	bal, err := s.balances.Get(ctx, userID, competitionID)
	if errors.Is(err, domain.ErrNotFound) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger.UserBoostBalance: %w", err)
	}
	return bal.Balance, nil
}

// UserBoosts returns the user's spend per agent within a competition,
// reconstructed from the journal through the aggregate link table.
func (s *Service) UserBoosts(ctx context.Context, userID, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	boosts, err := s.journal.UserBoosts(ctx, userID, competitionID)
	if err != nil {
		return nil, fmt.Errorf("ledger.UserBoosts: %w", err)
	}
	return boosts, nil
}

// AgentBoostTotals returns every agent's Boost total for a competition.
func (s *Service) AgentBoostTotals(ctx context.Context, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	totals, err := s.aggregates.TotalsByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("ledger.AgentBoostTotals: %w", err)
	}
	return totals, nil
}

// CompetitionDebits returns all debit journal entries for a competition
// with the spending user and timestamp. The journal is a published
// interface: reward computation consumes this feed directly.
func (s *Service) CompetitionDebits(ctx context.Context, competitionID uuid.UUID) ([]domain.CompetitionDebit, error) {
	debits, err := s.journal.CompetitionDebits(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("ledger.CompetitionDebits: %w", err)
	}
	return debits, nil
}

// ListChanges returns journal entries matching the filter, newest first.
func (s *Service) ListChanges(ctx context.Context, filter journal.ListFilter) ([]domain.ChangeEntry, error) {
	entries, err := s.journal.ListChanges(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ledger.ListChanges: %w", err)
	}
	return entries, nil
}
