package stakesync

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/domain"
	"github.com/agentarena/boost-ledger/internal/service/ledger"
)

var _ stakeRepo = &stakeRepoMock{}

type stakeRepoMock struct {
	UnawardedStakesFunc func(ctx context.Context, wallet string, competitionID uuid.UUID) ([]domain.Stake, error)
	RecordAwardFunc     func(ctx context.Context, award domain.StakeAward) (uuid.UUID, error)

	calls struct {
		UnawardedStakes []struct {
			Wallet        string
			CompetitionID uuid.UUID
		}
		RecordAward []struct {
			Award domain.StakeAward
		}
	}
	lockUnawardedStakes sync.RWMutex
	lockRecordAward     sync.RWMutex
}

func (mock *stakeRepoMock) UnawardedStakes(ctx context.Context, wallet string, competitionID uuid.UUID) ([]domain.Stake, error) {
	if mock.UnawardedStakesFunc == nil {
		panic("stakeRepoMock.UnawardedStakesFunc: method is nil but stakeRepo.UnawardedStakes was just called")
	}
	callInfo := struct {
		Wallet        string
		CompetitionID uuid.UUID
	}{Wallet: wallet, CompetitionID: competitionID}
	mock.lockUnawardedStakes.Lock()
	mock.calls.UnawardedStakes = append(mock.calls.UnawardedStakes, callInfo)
	mock.lockUnawardedStakes.Unlock()
	return mock.UnawardedStakesFunc(ctx, wallet, competitionID)
}

func (mock *stakeRepoMock) UnawardedStakesCalls() []struct {
	Wallet        string
	CompetitionID uuid.UUID
} {
	mock.lockUnawardedStakes.RLock()
	calls := mock.calls.UnawardedStakes
	mock.lockUnawardedStakes.RUnlock()
	return calls
}

func (mock *stakeRepoMock) RecordAward(ctx context.Context, award domain.StakeAward) (uuid.UUID, error) {
	if mock.RecordAwardFunc == nil {
		panic("stakeRepoMock.RecordAwardFunc: method is nil but stakeRepo.RecordAward was just called")
	}
	callInfo := struct {
		Award domain.StakeAward
	}{Award: award}
	mock.lockRecordAward.Lock()
	mock.calls.RecordAward = append(mock.calls.RecordAward, callInfo)
	mock.lockRecordAward.Unlock()
	return mock.RecordAwardFunc(ctx, award)
}

func (mock *stakeRepoMock) RecordAwardCalls() []struct {
	Award domain.StakeAward
} {
	mock.lockRecordAward.RLock()
	calls := mock.calls.RecordAward
	mock.lockRecordAward.RUnlock()
	return calls
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByWalletFunc func(ctx context.Context, wallet string) (*domain.User, error)

	calls struct {
		GetByWallet []struct {
			Wallet string
		}
	}
	lockGetByWallet sync.RWMutex
}

func (mock *userRepoMock) GetByWallet(ctx context.Context, wallet string) (*domain.User, error) {
	if mock.GetByWalletFunc == nil {
		panic("userRepoMock.GetByWalletFunc: method is nil but userRepo.GetByWallet was just called")
	}
	callInfo := struct {
		Wallet string
	}{Wallet: wallet}
	mock.lockGetByWallet.Lock()
	mock.calls.GetByWallet = append(mock.calls.GetByWallet, callInfo)
	mock.lockGetByWallet.Unlock()
	return mock.GetByWalletFunc(ctx, wallet)
}

func (mock *userRepoMock) GetByWalletCalls() []struct {
	Wallet string
} {
	mock.lockGetByWallet.RLock()
	calls := mock.calls.GetByWallet
	mock.lockGetByWallet.RUnlock()
	return calls
}

var _ boostLedger = &boostLedgerMock{}

type boostLedgerMock struct {
	IncreaseFunc func(ctx context.Context, in ledger.ChangeInput) (*domain.ApplyResult, error)

	calls struct {
		Increase []struct {
			In ledger.ChangeInput
		}
	}
	lockIncrease sync.RWMutex
}

func (mock *boostLedgerMock) Increase(ctx context.Context, in ledger.ChangeInput) (*domain.ApplyResult, error) {
	if mock.IncreaseFunc == nil {
		panic("boostLedgerMock.IncreaseFunc: method is nil but boostLedger.Increase was just called")
	}
	callInfo := struct {
		In ledger.ChangeInput
	}{In: in}
	mock.lockIncrease.Lock()
	mock.calls.Increase = append(mock.calls.Increase, callInfo)
	mock.lockIncrease.Unlock()
	return mock.IncreaseFunc(ctx, in)
}

func (mock *boostLedgerMock) IncreaseCalls() []struct {
	In ledger.ChangeInput
} {
	mock.lockIncrease.RLock()
	calls := mock.calls.Increase
	mock.lockIncrease.RUnlock()
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
