package ledger

import (
	"context"
	"math/big"
	"sync"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/adapter/postgres/journal"
	"github.com/agentarena/boost-ledger/internal/domain"
)

var _ balanceRepo = &balanceRepoMock{}

type balanceRepoMock struct {
	GetFunc           func(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error)
	EnsureFunc        func(ctx context.Context, userID, competitionID uuid.UUID) error
	LockForUpdateFunc func(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error)
	AddFunc           func(ctx context.Context, balanceID uuid.UUID, delta *big.Int) (*big.Int, error)

	calls struct {
		Get []struct {
			UserID        uuid.UUID
			CompetitionID uuid.UUID
		}
		Ensure []struct {
			UserID        uuid.UUID
			CompetitionID uuid.UUID
		}
		LockForUpdate []struct {
			UserID        uuid.UUID
			CompetitionID uuid.UUID
		}
		Add []struct {
			BalanceID uuid.UUID
			Delta     *big.Int
		}
	}
	lockGet           sync.RWMutex
	lockEnsure        sync.RWMutex
	lockLockForUpdate sync.RWMutex
	lockAdd           sync.RWMutex
}

func (mock *balanceRepoMock) Get(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error) {
	if mock.GetFunc == nil {
		panic("balanceRepoMock.GetFunc: method is nil but balanceRepo.Get was just called")
	}
	callInfo := struct {
		UserID        uuid.UUID
		CompetitionID uuid.UUID
	}{UserID: userID, CompetitionID: competitionID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, competitionID)
}

func (mock *balanceRepoMock) GetCalls() []struct {
	UserID        uuid.UUID
	CompetitionID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *balanceRepoMock) Ensure(ctx context.Context, userID, competitionID uuid.UUID) error {
	if mock.EnsureFunc == nil {
		panic("balanceRepoMock.EnsureFunc: method is nil but balanceRepo.Ensure was just called")
	}
	callInfo := struct {
		UserID        uuid.UUID
		CompetitionID uuid.UUID
	}{UserID: userID, CompetitionID: competitionID}
	mock.lockEnsure.Lock()
	mock.calls.Ensure = append(mock.calls.Ensure, callInfo)
	mock.lockEnsure.Unlock()
	return mock.EnsureFunc(ctx, userID, competitionID)
}

func (mock *balanceRepoMock) EnsureCalls() []struct {
	UserID        uuid.UUID
	CompetitionID uuid.UUID
} {
	mock.lockEnsure.RLock()
	calls := mock.calls.Ensure
	mock.lockEnsure.RUnlock()
	return calls
}

func (mock *balanceRepoMock) LockForUpdate(ctx context.Context, userID, competitionID uuid.UUID) (*domain.Balance, error) {
	if mock.LockForUpdateFunc == nil {
		panic("balanceRepoMock.LockForUpdateFunc: method is nil but balanceRepo.LockForUpdate was just called")
	}
	callInfo := struct {
		UserID        uuid.UUID
		CompetitionID uuid.UUID
	}{UserID: userID, CompetitionID: competitionID}
	mock.lockLockForUpdate.Lock()
	mock.calls.LockForUpdate = append(mock.calls.LockForUpdate, callInfo)
	mock.lockLockForUpdate.Unlock()
	return mock.LockForUpdateFunc(ctx, userID, competitionID)
}

func (mock *balanceRepoMock) LockForUpdateCalls() []struct {
	UserID        uuid.UUID
	CompetitionID uuid.UUID
} {
	mock.lockLockForUpdate.RLock()
	calls := mock.calls.LockForUpdate
	mock.lockLockForUpdate.RUnlock()
	return calls
}

func (mock *balanceRepoMock) Add(ctx context.Context, balanceID uuid.UUID, delta *big.Int) (*big.Int, error) {
	if mock.AddFunc == nil {
		panic("balanceRepoMock.AddFunc: method is nil but balanceRepo.Add was just called")
	}
	callInfo := struct {
		BalanceID uuid.UUID
		Delta     *big.Int
	}{BalanceID: balanceID, Delta: delta}
	mock.lockAdd.Lock()
	mock.calls.Add = append(mock.calls.Add, callInfo)
	mock.lockAdd.Unlock()
	return mock.AddFunc(ctx, balanceID, delta)
}

func (mock *balanceRepoMock) AddCalls() []struct {
	BalanceID uuid.UUID
	Delta     *big.Int
} {
	mock.lockAdd.RLock()
	calls := mock.calls.Add
	mock.lockAdd.RUnlock()
	return calls
}

var _ journalRepo = &journalRepoMock{}

type journalRepoMock struct {
	InsertFunc            func(ctx context.Context, balanceID uuid.UUID, delta *big.Int, key string, metadata map[string]any) (uuid.UUID, bool, error)
	UserBoostsFunc        func(ctx context.Context, userID, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error)
	CompetitionDebitsFunc func(ctx context.Context, competitionID uuid.UUID) ([]domain.CompetitionDebit, error)
	ListChangesFunc       func(ctx context.Context, filter journal.ListFilter) ([]domain.ChangeEntry, error)

	calls struct {
		Insert []struct {
			BalanceID uuid.UUID
			Delta     *big.Int
			Key       string
			Metadata  map[string]any
		}
		UserBoosts []struct {
			UserID        uuid.UUID
			CompetitionID uuid.UUID
		}
		CompetitionDebits []struct {
			CompetitionID uuid.UUID
		}
		ListChanges []struct {
			Filter journal.ListFilter
		}
	}
	lockInsert            sync.RWMutex
	lockUserBoosts        sync.RWMutex
	lockCompetitionDebits sync.RWMutex
	lockListChanges       sync.RWMutex
}

func (mock *journalRepoMock) Insert(ctx context.Context, balanceID uuid.UUID, delta *big.Int, key string, metadata map[string]any) (uuid.UUID, bool, error) {
	if mock.InsertFunc == nil {
		panic("journalRepoMock.InsertFunc: method is nil but journalRepo.Insert was just called")
	}
	callInfo := struct {
		BalanceID uuid.UUID
		Delta     *big.Int
		Key       string
		Metadata  map[string]any
	}{BalanceID: balanceID, Delta: delta, Key: key, Metadata: metadata}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, balanceID, delta, key, metadata)
}

func (mock *journalRepoMock) InsertCalls() []struct {
	BalanceID uuid.UUID
	Delta     *big.Int
	Key       string
	Metadata  map[string]any
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *journalRepoMock) UserBoosts(ctx context.Context, userID, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	if mock.UserBoostsFunc == nil {
		panic("journalRepoMock.UserBoostsFunc: method is nil but journalRepo.UserBoosts was just called")
	}
	callInfo := struct {
		UserID        uuid.UUID
		CompetitionID uuid.UUID
	}{UserID: userID, CompetitionID: competitionID}
	mock.lockUserBoosts.Lock()
	mock.calls.UserBoosts = append(mock.calls.UserBoosts, callInfo)
	mock.lockUserBoosts.Unlock()
	return mock.UserBoostsFunc(ctx, userID, competitionID)
}

func (mock *journalRepoMock) UserBoostsCalls() []struct {
	UserID        uuid.UUID
	CompetitionID uuid.UUID
} {
	mock.lockUserBoosts.RLock()
	calls := mock.calls.UserBoosts
	mock.lockUserBoosts.RUnlock()
	return calls
}

func (mock *journalRepoMock) CompetitionDebits(ctx context.Context, competitionID uuid.UUID) ([]domain.CompetitionDebit, error) {
	if mock.CompetitionDebitsFunc == nil {
		panic("journalRepoMock.CompetitionDebitsFunc: method is nil but journalRepo.CompetitionDebits was just called")
	}
	callInfo := struct {
		CompetitionID uuid.UUID
	}{CompetitionID: competitionID}
	mock.lockCompetitionDebits.Lock()
	mock.calls.CompetitionDebits = append(mock.calls.CompetitionDebits, callInfo)
	mock.lockCompetitionDebits.Unlock()
	return mock.CompetitionDebitsFunc(ctx, competitionID)
}

func (mock *journalRepoMock) CompetitionDebitsCalls() []struct {
	CompetitionID uuid.UUID
} {
	mock.lockCompetitionDebits.RLock()
	calls := mock.calls.CompetitionDebits
	mock.lockCompetitionDebits.RUnlock()
	return calls
}

func (mock *journalRepoMock) ListChanges(ctx context.Context, filter journal.ListFilter) ([]domain.ChangeEntry, error) {
	if mock.ListChangesFunc == nil {
		panic("journalRepoMock.ListChangesFunc: method is nil but journalRepo.ListChanges was just called")
	}
	callInfo := struct {
		Filter journal.ListFilter
	}{Filter: filter}
	mock.lockListChanges.Lock()
	mock.calls.ListChanges = append(mock.calls.ListChanges, callInfo)
	mock.lockListChanges.Unlock()
	return mock.ListChangesFunc(ctx, filter)
}

func (mock *journalRepoMock) ListChangesCalls() []struct {
	Filter journal.ListFilter
} {
	mock.lockListChanges.RLock()
	calls := mock.calls.ListChanges
	mock.lockListChanges.RUnlock()
	return calls
}

var _ aggregateRepo = &aggregateRepoMock{}

type aggregateRepoMock struct {
	AddToTotalFunc          func(ctx context.Context, agentID, competitionID uuid.UUID, amount *big.Int) (uuid.UUID, error)
	LinkFunc                func(ctx context.Context, aggregateID, changeID uuid.UUID) error
	TotalsByCompetitionFunc func(ctx context.Context, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error)

	calls struct {
		AddToTotal []struct {
			AgentID       uuid.UUID
			CompetitionID uuid.UUID
			Amount        *big.Int
		}
		Link []struct {
			AggregateID uuid.UUID
			ChangeID    uuid.UUID
		}
		TotalsByCompetition []struct {
			CompetitionID uuid.UUID
		}
	}
	lockAddToTotal          sync.RWMutex
	lockLink                sync.RWMutex
	lockTotalsByCompetition sync.RWMutex
}

func (mock *aggregateRepoMock) AddToTotal(ctx context.Context, agentID, competitionID uuid.UUID, amount *big.Int) (uuid.UUID, error) {
	if mock.AddToTotalFunc == nil {
		panic("aggregateRepoMock.AddToTotalFunc: method is nil but aggregateRepo.AddToTotal was just called")
	}
	callInfo := struct {
		AgentID       uuid.UUID
		CompetitionID uuid.UUID
		Amount        *big.Int
	}{AgentID: agentID, CompetitionID: competitionID, Amount: amount}
	mock.lockAddToTotal.Lock()
	mock.calls.AddToTotal = append(mock.calls.AddToTotal, callInfo)
	mock.lockAddToTotal.Unlock()
	return mock.AddToTotalFunc(ctx, agentID, competitionID, amount)
}

func (mock *aggregateRepoMock) AddToTotalCalls() []struct {
	AgentID       uuid.UUID
	CompetitionID uuid.UUID
	Amount        *big.Int
} {
	mock.lockAddToTotal.RLock()
	calls := mock.calls.AddToTotal
	mock.lockAddToTotal.RUnlock()
	return calls
}

func (mock *aggregateRepoMock) Link(ctx context.Context, aggregateID, changeID uuid.UUID) error {
	if mock.LinkFunc == nil {
		panic("aggregateRepoMock.LinkFunc: method is nil but aggregateRepo.Link was just called")
	}
	callInfo := struct {
		AggregateID uuid.UUID
		ChangeID    uuid.UUID
	}{AggregateID: aggregateID, ChangeID: changeID}
	mock.lockLink.Lock()
	mock.calls.Link = append(mock.calls.Link, callInfo)
	mock.lockLink.Unlock()
	return mock.LinkFunc(ctx, aggregateID, changeID)
}

func (mock *aggregateRepoMock) LinkCalls() []struct {
	AggregateID uuid.UUID
	ChangeID    uuid.UUID
} {
	mock.lockLink.RLock()
	calls := mock.calls.Link
	mock.lockLink.RUnlock()
	return calls
}

func (mock *aggregateRepoMock) TotalsByCompetition(ctx context.Context, competitionID uuid.UUID) (map[uuid.UUID]*big.Int, error) {
	if mock.TotalsByCompetitionFunc == nil {
		panic("aggregateRepoMock.TotalsByCompetitionFunc: method is nil but aggregateRepo.TotalsByCompetition was just called")
	}
	callInfo := struct {
		CompetitionID uuid.UUID
	}{CompetitionID: competitionID}
	mock.lockTotalsByCompetition.Lock()
	mock.calls.TotalsByCompetition = append(mock.calls.TotalsByCompetition, callInfo)
	mock.lockTotalsByCompetition.Unlock()
	return mock.TotalsByCompetitionFunc(ctx, competitionID)
}

func (mock *aggregateRepoMock) TotalsByCompetitionCalls() []struct {
	CompetitionID uuid.UUID
} {
	mock.lockTotalsByCompetition.RLock()
	calls := mock.calls.TotalsByCompetition
	mock.lockTotalsByCompetition.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
