// Package stakesync implements the stake conversion bridge: it reads the
// staking indexer's feed and converts active, not-yet-awarded stakes into
// one-time Boost credits, exactly once per (stake, competition).
package stakesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/domain"
	"github.com/agentarena/boost-ledger/internal/service/ledger"
)

// stakeRepo defines the stake repository interface needed by the bridge.
type stakeRepo interface {
	UnawardedStakes(ctx context.Context, wallet string, competitionID uuid.UUID) ([]domain.Stake, error)
	RecordAward(ctx context.Context, award domain.StakeAward) (uuid.UUID, error)
}

// userRepo defines the user repository interface needed by the bridge.
type userRepo interface {
	GetByWallet(ctx context.Context, wallet string) (*domain.User, error)
}

// boostLedger defines the ledger operations the bridge drives.
type boostLedger interface {
	Increase(ctx context.Context, in ledger.ChangeInput) (*domain.ApplyResult, error)
}

// txManager defines the transaction manager interface needed by the bridge.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service converts stakes to Boost. The stake_awards table, not the
// journal, is the source of truth for "already converted": each conversion
// attempt uses a fresh journal key, and the award insert's uniqueness is
// what makes the conversion exactly-once.
type Service struct {
	log           *slog.Logger
	stakes        stakeRepo
	users         userRepo
	ledger        boostLedger
	tx            txManager
	multiplierBps int64
}

// NewService creates a new stake conversion service.
// multiplierBps scales stake amounts to Boost in basis points
// (10000 = 1.0x).
func NewService(
	logger *slog.Logger,
	stakes stakeRepo,
	users userRepo,
	boost boostLedger,
	tx txManager,
	multiplierBps int64,
) *Service {
	return &Service{
		log:           logger.With("service", "stakesync"),
		stakes:        stakes,
		users:         users,
		ledger:        boost,
		tx:            tx,
		multiplierBps: multiplierBps,
	}
}

// Report summarizes one wallet sync.
type Report struct {
	Wallet    string
	Converted int
	Skipped   int
	Granted   *big.Int
}

// UnawardedStakes returns the wallet's active stakes not yet converted for
// the competition, most recently created first.
func (s *Service) UnawardedStakes(ctx context.Context, wallet string, competitionID uuid.UUID) ([]domain.Stake, error) {
	stakes, err := s.stakes.UnawardedStakes(ctx, wallet, competitionID)
	if err != nil {
		return nil, fmt.Errorf("stakesync.UnawardedStakes: %w", err)
	}
	return stakes, nil
}

// RecordStakeBoostAward inserts the conversion record for a stake whose
// Boost credit (changeID) was produced by the caller in the same
// transaction. Returns false without error when the (stake, competition)
// pair is already awarded; callers outside a transaction can treat that as
// a skip, callers inside one must roll back their credit.
func (s *Service) RecordStakeBoostAward(ctx context.Context, stakeID, competitionID uuid.UUID, base *big.Int, multiplierBps int64, changeID uuid.UUID) (bool, error) {
	_, err := s.stakes.RecordAward(ctx, domain.StakeAward{
		StakeID:       stakeID,
		CompetitionID: competitionID,
		BaseAmount:    base,
		MultiplierBps: multiplierBps,
		ChangeID:      changeID,
	})
	if errors.Is(err, domain.ErrDuplicateAward) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stakesync.RecordStakeBoostAward: %w", err)
	}
	return true, nil
}

// SyncWallet converts every unawarded active stake of the wallet into a
// Boost credit for its owning user in the given competition.
//
// Each stake is converted in its own transaction: the Increase and the
// award record commit or roll back together, so a crash between the two
// leaves the stake unawarded and a later sync retries it with a fresh
// journal key. A concurrent sync losing the award-insert race rolls its
// credit back and counts the stake as skipped.
func (s *Service) SyncWallet(ctx context.Context, wallet string, competitionID uuid.UUID) (*Report, error) {
	user, err := s.users.GetByWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("stakesync.SyncWallet: resolve wallet: %w", err)
	}

	stakes, err := s.stakes.UnawardedStakes(ctx, wallet, competitionID)
	if err != nil {
		return nil, fmt.Errorf("stakesync.SyncWallet: %w", err)
	}

	report := &Report{Wallet: wallet, Granted: big.NewInt(0)}
	for _, stake := range stakes {
		amount := domain.AwardAmount(stake.Amount, s.multiplierBps)
		if amount.Sign() <= 0 {
			report.Skipped++
			continue
		}

		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			res, err := s.ledger.Increase(txCtx, ledger.ChangeInput{
				UserID:        user.ID,
				CompetitionID: competitionID,
				Amount:        amount,
				Metadata: map[string]any{
					"source":   "stake_conversion",
					"stake_id": stake.ID.String(),
				},
			})
			if err != nil {
				return fmt.Errorf("credit stake boost: %w", err)
			}

			_, err = s.stakes.RecordAward(txCtx, domain.StakeAward{
				StakeID:       stake.ID,
				CompetitionID: competitionID,
				BaseAmount:    stake.Amount,
				MultiplierBps: s.multiplierBps,
				ChangeID:      res.ChangeID,
			})
			if err != nil {
				return fmt.Errorf("record stake award: %w", err)
			}
			return nil
		})
		if errors.Is(err, domain.ErrDuplicateAward) {
			// Another sync converted this stake first; our credit rolled back.
			report.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stakesync.SyncWallet: stake %s: %w", stake.ID, err)
		}

		report.Converted++
		report.Granted.Add(report.Granted, amount)
	}

	s.log.InfoContext(ctx, "wallet synced",
		slog.String("wallet", wallet),
		slog.String("competition_id", competitionID.String()),
		slog.Int("converted", report.Converted),
		slog.Int("skipped", report.Skipped),
		slog.String("granted", report.Granted.String()),
	)
	return report, nil
}
