package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentarena/boost-ledger/internal/domain"
)

// Increase credits a user's Boost balance within a competition, creating
// the balance at zero on first use.
//
// The journal insert is the replay arbiter: if the idempotency key was
// already applied to this balance, the result is a noop carrying the
// current balance and no new journal entry.
func (s *Service) Increase(ctx context.Context, in ChangeInput) (*domain.ApplyResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	key := in.key()

	var res *domain.ApplyResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.balances.Ensure(txCtx, in.UserID, in.CompetitionID); err != nil {
			return fmt.Errorf("ensure balance: %w", err)
		}

		bal, err := s.balances.LockForUpdate(txCtx, in.UserID, in.CompetitionID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		changeID, applied, err := s.journal.Insert(txCtx, bal.ID, in.Amount, key, in.Metadata)
		if err != nil {
			return fmt.Errorf("insert journal entry: %w", err)
		}
		if !applied {
			res = &domain.ApplyResult{Applied: false, Balance: bal.Balance}
			return nil
		}

		after, err := s.balances.Add(txCtx, bal.ID, in.Amount)
		if err != nil {
			return fmt.Errorf("apply credit: %w", err)
		}

		res = &domain.ApplyResult{Applied: true, Balance: after, ChangeID: changeID}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.Increase: %w", err)
	}

	if res.Applied {
		s.log.InfoContext(ctx, "balance increased",
			slog.String("user_id", in.UserID.String()),
			slog.String("competition_id", in.CompetitionID.String()),
			slog.String("amount", in.Amount.String()),
		)
	} else {
		s.log.DebugContext(ctx, "increase replayed",
			slog.String("user_id", in.UserID.String()),
			slog.String("idempotency_key", key),
		)
	}
	return res, nil
}
