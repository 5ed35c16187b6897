package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/domain"
)

// Decrease debits a user's Boost balance within a competition.
//
// Fails with ErrNoSuchBalance if the balance row does not exist (a debit
// never creates a balance) and with ErrInsufficientBalance if the debit
// would drive it negative. A replayed idempotency key is a noop, never an
// error, regardless of the current balance.
func (s *Service) Decrease(ctx context.Context, in ChangeInput) (*domain.ApplyResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	key := in.key()

	var res *domain.ApplyResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		res, _, err = s.applyDebit(txCtx, in, key)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ledger.Decrease: %w", err)
	}

	if res.Applied {
		s.log.InfoContext(ctx, "balance decreased",
			slog.String("user_id", in.UserID.String()),
			slog.String("competition_id", in.CompetitionID.String()),
			slog.String("amount", in.Amount.String()),
		)
	}
	return res, nil
}

// applyDebit performs the debit side shared by Decrease and BoostAgent.
// Must run inside a transaction. Returns the result and the journal entry
// id (uuid.Nil on replay).
//
// Order matters: the journal insert runs before the sufficiency check so
// that a replayed key resolves to a noop instead of surfacing
// ErrInsufficientBalance against today's balance. A failed check aborts the
// transaction, which also rolls the journal entry back out.
func (s *Service) applyDebit(ctx context.Context, in ChangeInput, key string) (*domain.ApplyResult, uuid.UUID, error) {
	bal, err := s.balances.LockForUpdate(ctx, in.UserID, in.CompetitionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, uuid.Nil, domain.ErrNoSuchBalance
		}
		return nil, uuid.Nil, fmt.Errorf("lock balance: %w", err)
	}

	delta := new(big.Int).Neg(in.Amount)
	changeID, applied, err := s.journal.Insert(ctx, bal.ID, delta, key, in.Metadata)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("insert journal entry: %w", err)
	}
	if !applied {
		return &domain.ApplyResult{Applied: false, Balance: bal.Balance}, uuid.Nil, nil
	}

	if bal.Balance.Cmp(in.Amount) < 0 {
		return nil, uuid.Nil, domain.ErrInsufficientBalance
	}

	after, err := s.balances.Add(ctx, bal.ID, delta)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("apply debit: %w", err)
	}

	return &domain.ApplyResult{Applied: true, Balance: after, ChangeID: changeID}, changeID, nil
}
