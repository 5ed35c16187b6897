// Command grant credits Boost to a user's balance (admin grant).
//
// Usage:
//
//	grant -user <uuid> -competition <uuid> -amount 1000000 [-reason "promo"] [-key <idempotency-key>]
//
// Requires DATABASE_DSN. Amounts are arbitrary-precision decimal integers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/agentarena/boost-ledger/internal/adapter/postgres"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/aggregate"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/balance"
	"github.com/agentarena/boost-ledger/internal/adapter/postgres/journal"
	"github.com/agentarena/boost-ledger/internal/app"
	"github.com/agentarena/boost-ledger/internal/config"
	"github.com/agentarena/boost-ledger/internal/service/ledger"
)

func main() {
	var (
		userFlag        = flag.String("user", "", "user id (required)")
		competitionFlag = flag.String("competition", "", "competition id (required)")
		amountFlag      = flag.String("amount", "", "Boost amount to grant (required)")
		reasonFlag      = flag.String("reason", "", "reason recorded in the journal metadata")
		keyFlag         = flag.String("key", "", "idempotency key (optional; omit for a one-off grant)")
	)
	flag.Parse()

	if *userFlag == "" || *competitionFlag == "" || *amountFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("invalid user id: %v", err)
	}
	competitionID, err := uuid.Parse(*competitionFlag)
	if err != nil {
		log.Fatalf("invalid competition id: %v", err)
	}
	amount, ok := new(big.Int).SetString(*amountFlag, 10)
	if !ok {
		log.Fatalf("invalid amount %q", *amountFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)
	svc := ledger.NewService(logger, balance.New(pool), journal.New(pool), aggregate.New(pool), tx)

	metadata := map[string]any{"source": "admin_grant"}
	if *reasonFlag != "" {
		metadata["reason"] = *reasonFlag
	}

	res, err := svc.Increase(ctx, ledger.ChangeInput{
		UserID:         userID,
		CompetitionID:  competitionID,
		Amount:         amount,
		IdempotencyKey: *keyFlag,
		Metadata:       metadata,
	})
	if err != nil {
		log.Fatalf("grant: %v", err)
	}

	if res.Applied {
		fmt.Printf("Granted %s Boost; balance is now %s.\n", amount, res.Balance)
	} else {
		fmt.Printf("Already applied (idempotency key replay); balance is %s.\n", res.Balance)
	}
}
