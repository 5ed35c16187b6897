package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentarena/boost-ledger/internal/domain"
)

// BoostAgent spends a user's Boost on an agent: the user's balance is
// debited and the agent's competition total is credited in one transaction.
//
// The aggregate side runs if and only if the journal insert was newly
// applied. A replayed key skips it entirely, which keeps the journal and
// the aggregate in lockstep without a second idempotency check.
func (s *Service) BoostAgent(ctx context.Context, in BoostInput) (*domain.ApplyResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	key := in.ChangeInput.key()

	var res *domain.ApplyResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		result, changeID, err := s.applyDebit(txCtx, in.ChangeInput, key)
		if err != nil {
			return err
		}
		res = result
		if !result.Applied {
			return nil
		}

		aggregateID, err := s.aggregates.AddToTotal(txCtx, in.AgentID, in.CompetitionID, in.Amount)
		if err != nil {
			return fmt.Errorf("credit agent total: %w", err)
		}
		if err := s.aggregates.Link(txCtx, aggregateID, changeID); err != nil {
			return fmt.Errorf("link journal entry to aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.BoostAgent: %w", err)
	}

	if res.Applied {
		s.log.InfoContext(ctx, "agent boosted",
			slog.String("user_id", in.UserID.String()),
			slog.String("agent_id", in.AgentID.String()),
			slog.String("competition_id", in.CompetitionID.String()),
			slog.String("amount", in.Amount.String()),
		)
	}
	return res, nil
}
