package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/marketplace/internal/config"
	"github.com/MrJamesThe3rd/marketplace/internal/contract"
	contractStore "github.com/MrJamesThe3rd/marketplace/internal/contract/store"
	"github.com/MrJamesThe3rd/marketplace/internal/database"
	"github.com/MrJamesThe3rd/marketplace/internal/database/migrations"
	"github.com/MrJamesThe3rd/marketplace/internal/deposit"
	marketHttp "github.com/MrJamesThe3rd/marketplace/internal/http"
	adminHandler "github.com/MrJamesThe3rd/marketplace/internal/http/admin"
	balanceHandler "github.com/MrJamesThe3rd/marketplace/internal/http/balance"
	contractHandler "github.com/MrJamesThe3rd/marketplace/internal/http/contract"
	jobHandler "github.com/MrJamesThe3rd/marketplace/internal/http/job"
	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/marketplace/internal/ledger/store"
	"github.com/MrJamesThe3rd/marketplace/internal/metrics"
	"github.com/MrJamesThe3rd/marketplace/internal/payment"
	"github.com/MrJamesThe3rd/marketplace/internal/report"
	reportStore "github.com/MrJamesThe3rd/marketplace/internal/report/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel})))

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := migrations.Up(db); err != nil {
			return err
		}

		slog.Info("database schema is up to date")
	}

	var (
		ledgerRepo  = ledgerStore.New(db)
		coordinator = ledger.NewCoordinator(ledgerRepo, cfg.Ledger.TxTimeout)
		m           = metrics.New()
	)

	var (
		contractService = contract.NewService(contractStore.New(db))
		depositService  = deposit.NewService(ledgerRepo, coordinator)
		paymentService  = payment.NewService(ledgerRepo, coordinator)
		reportService   = report.NewService(reportStore.New(db))
	)

	var (
		contractH = contractHandler.NewHandler(contractService)
		jobH      = jobHandler.NewHandler(contractService, paymentService, m)
		balanceH  = balanceHandler.NewHandler(depositService, m)
		adminH    = adminHandler.NewHandler(reportService)
	)

	router := marketHttp.New(marketHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Profiles:       ledgerRepo,
		Metrics:        m,
	}, contractH, jobH, balanceH, adminH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
