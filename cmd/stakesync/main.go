// Command stakesync converts unawarded stakes into Boost credits.
//
// Usage:
//
//	stakesync -wallet 0xabc... -competition <uuid>
//
// With SYNC_INTERVAL set (or -interval), the sync runs on a schedule until
// interrupted; otherwise it runs once and exits. Requires DATABASE_DSN.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/aggregate"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/balance"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/journal"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/stake"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/user"
	"github.com/agentarena/boost-ledger/internal/app"
	"github.com/agentarena/boost-ledger/internal/config"
	"github.com/agentarena/boost-ledger/internal/service/ledger"
	"github.com/agentarena/boost-ledger/internal/service/stakesync"
)

func main() {
	var (
		walletFlag      = flag.String("wallet", "", "wallet to sync (required)")
		competitionFlag = flag.String("competition", "", "competition id (required)")
		intervalFlag    = flag.Duration("interval", 0, "run on a schedule instead of once (overrides SYNC_INTERVAL)")
	)
	flag.Parse()

	if *walletFlag == "" || *competitionFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	competitionID, err := uuid.Parse(*competitionFlag)
	if err != nil {
		log.Fatalf("invalid competition id: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *intervalFlag > 0 {
		cfg.Sync.Interval = *intervalFlag
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)
	ledgerSvc := ledger.NewService(logger, balance.New(pool), journal.New(pool), aggregate.New(pool), tx)
	syncSvc := stakesync.NewService(logger, stake.New(pool), user.New(pool), ledgerSvc, tx, cfg.Sync.MultiplierBps)

	runOnce := func() {
		runCtx, cancelRun := context.WithTimeout(ctx, time.Minute)
		defer cancelRun()

		report, err := syncSvc.SyncWallet(runCtx, *walletFlag, competitionID)
		if err != nil {
			logger.ErrorContext(runCtx, "sync failed",
				slog.String("wallet", *walletFlag),
				slog.String("error", err.Error()),
			)
			return
		}
		fmt.Printf("wallet %s: converted %d stake(s), skipped %d, granted %s Boost\n",
			report.Wallet, report.Converted, report.Skipped, report.Granted)
	}

	if cfg.Sync.Interval <= 0 {
		runOnce()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.Sync.Interval), runOnce); err != nil {
		log.Fatalf("schedule sync: %v", err)
	}
	c.Start()
	logger.Info("stake sync scheduled",
		slog.String("interval", cfg.Sync.Interval.String()),
		slog.String("version", app.BuildVersion()),
	)

	<-ctx.Done()
	<-c.Stop().Done()
}
