package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"smartcommute/internal/account/handler"
	"smartcommute/internal/account/service"
	"smartcommute/internal/account/snapshot"
	cardstore "smartcommute/internal/account/store/card"
	userstore "smartcommute/internal/account/store/user"
	httpapi "smartcommute/internal/http"
	"smartcommute/internal/platform/config"
	"smartcommute/internal/platform/httpserver"
	"smartcommute/internal/platform/logger"
	"smartcommute/internal/platform/metrics"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/account packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	users, err := snapshot.LoadUsers(cfg.UsersSeedPath)
	if err != nil {
		log.Error("loading user seed data failed", "error", err.Error())
		os.Exit(1)
	}
	cards, err := snapshot.LoadCards(cfg.CardsSeedPath)
	if err != nil {
		log.Error("loading card seed data failed", "error", err.Error())
		os.Exit(1)
	}

	m := metrics.New()
	writer := snapshot.NewWriter(cfg.SnapshotPath, log, m)

	userDirectory := userstore.New(writer)
	if err := userDirectory.Seed(users); err != nil {
		log.Error("seeding user directory failed", "error", err.Error())
		os.Exit(1)
	}
	cardLedger := cardstore.New()
	if err := cardLedger.Seed(cards); err != nil {
		log.Error("seeding card ledger failed", "error", err.Error())
		os.Exit(1)
	}

	accounts := service.New(userDirectory, cardLedger, m)
	router := httpapi.NewRouter(handler.New(accounts, log, m), m)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return writer.Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting smartcommute account server",
			"addr", cfg.Addr,
			"users", len(users),
			"cards", len(cards),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("server stopped")
}
