// Package ledger implements the Boost ledger engine: invariant-checked
// balance mutations, the idempotent journal protocol, and the derived
// aggregate views.
package ledger

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/adapter/postgres/journal"
	"github.com/agentarena/boost-ledger/internal/domain"
)

// balanceRepo defines the balance repository interface needed by the ledger.
type balanceRepo interface {
	Get(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error)
	Ensure(ctx context.Context, userID, competitionID uuid.UUID) error
	LockForUpdate(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error)
	Add(ctx context.Context, balanceID uuid.UUID, delta *big.Int) (*big.Int, error)
}

// journalRepo defines the journal repository interface needed by the ledger.
type journalRepo interface {
	Insert(ctx context.Context, balanceID uuid.UUID, delta *big.Int, key string, metadata map[string]any) (uuid.UUID, bool, error)
	UserBoosts(ctx context.Context, userID, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error)
	CompetitionDebits(ctx context.Context, competitionID uuid.UUID) ([]domain.CompetitionDebit, error)
	ListChanges(ctx context.Context, filter journal.ListFilter) ([]domain.ChangeEntry, error)
}

// aggregateRepo defines the aggregate repository interface needed by the ledger.
type aggregateRepo interface {
	AddToTotal(ctx context.Context, agentID, competitionID uuid.UUID, amount *big.Int) (uuid.UUID, error)
	Link(ctx context.Context, aggregateID, changeID uuid.UUID) error
	TotalsByCompetition(ctx context.Context, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error)
}

// txManager defines the transaction manager interface needed by the ledger.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the Boost ledger operations. Every mutation runs as a
// single transaction; concurrent writers to the same balance serialize on
// the balance row lock, and the journal's unique key constraint is the
// authoritative replay guard.
type Service struct {
	log        *slog.Logger
	balances   balanceRepo
	journal    journalRepo
	aggregates aggregateRepo
	tx         txManager
}

// NewService creates a new ledger service instance.
func NewService(
	logger *slog.Logger,
	balances balanceRepo,
	journal journalRepo,
	aggregates aggregateRepo,
	tx txManager,
) *Service {
	return &Service{
		log:        logger.With("service", "ledger"),
		balances:   balances,
		journal:    journal,
		aggregates: aggregates,
		tx:         tx,
	}
}
