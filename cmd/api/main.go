package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/bank"
	bankStore "github.com/MrJamesThe3rd/carteira/internal/bank/store"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	cardStore "github.com/MrJamesThe3rd/carteira/internal/card/store"
	"github.com/MrJamesThe3rd/carteira/internal/category"
	categoryStore "github.com/MrJamesThe3rd/carteira/internal/category/store"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	"github.com/MrJamesThe3rd/carteira/internal/database"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/carteira/internal/expense/store"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/forecast"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	goalStore "github.com/MrJamesThe3rd/carteira/internal/goal/store"
	api "github.com/MrJamesThe3rd/carteira/internal/http"
	bankHandler "github.com/MrJamesThe3rd/carteira/internal/http/bank"
	cardHandler "github.com/MrJamesThe3rd/carteira/internal/http/card"
	categoryHandler "github.com/MrJamesThe3rd/carteira/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/carteira/internal/http/expense"
	exportHandler "github.com/MrJamesThe3rd/carteira/internal/http/export"
	forecastHandler "github.com/MrJamesThe3rd/carteira/internal/http/forecast"
	goalHandler "github.com/MrJamesThe3rd/carteira/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/carteira/internal/http/importcsv"
	incomeHandler "github.com/MrJamesThe3rd/carteira/internal/http/income"
	invoiceHandler "github.com/MrJamesThe3rd/carteira/internal/http/invoice"
	matchingHandler "github.com/MrJamesThe3rd/carteira/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/carteira/internal/http/report"
	userHandler "github.com/MrJamesThe3rd/carteira/internal/http/user"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	incomeStore "github.com/MrJamesThe3rd/carteira/internal/income/store"
	"github.com/MrJamesThe3rd/carteira/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/carteira/internal/invoice/store"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/carteira/internal/matching/store"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
	"github.com/MrJamesThe3rd/carteira/internal/report"
	"github.com/MrJamesThe3rd/carteira/internal/user"
	userStore "github.com/MrJamesThe3rd/carteira/internal/user/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.Auth.Secret == "" {
		return errors.New("AUTH_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		log.Info().Msg("schema applied")
	}

	receiptStore, err := newReceiptStore(ctx, cfg)
	if err != nil {
		return err
	}

	if c, ok := receiptStore.(io.Closer); ok {
		defer c.Close()
	}

	var (
		bankService     = bank.NewService(bankStore.New(db))
		cardService     = card.NewService(cardStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db))
		incomeService   = income.NewService(incomeStore.New(db))
		userService     = user.NewService(userStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		invoiceService  = invoice.NewService(invoiceStore.New(db), cardService, expenseService)
		goalService     = goal.NewService(goalStore.New(db), categoryService, incomeService, expenseService)
		reportService   = report.NewService(incomeService, expenseService, categoryService)
		receiptService  = receipt.NewService(receiptStore, expenseService)
		exportService   = export.NewService(expenseService, receiptService)
		importService   = importer.NewService(expenseService, incomeService, bankService, cardService, matchingService)
		forecastService = forecast.NewService(forecast.Sources{
			Banks:    bankService,
			Cards:    cardService,
			Incomes:  incomeService,
			Expenses: expenseService,
			Invoices: invoiceService,
			Users:    userService,
		}, log)
	)

	router := api.New(api.Options{
		Log:         log,
		Verifier:    auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer),
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
	}, api.Handlers{
		Forecast:   forecastHandler.NewHandler(forecastService, cfg.Forecast.Horizon),
		Banks:      bankHandler.NewHandler(bankService),
		Cards:      cardHandler.NewHandler(cardService, invoiceService),
		Categories: categoryHandler.NewHandler(categoryService),
		Goals:      goalHandler.NewHandler(goalService),
		Expenses:   expenseHandler.NewHandler(expenseService, receiptService, cfg.Server.MaxUpload),
		Incomes:    incomeHandler.NewHandler(incomeService),
		Invoices:   invoiceHandler.NewHandler(invoiceService),
		Reports:    reportHandler.NewHandler(reportService),
		Import:     importHandler.NewHandler(importService, cfg.Server.MaxUpload),
		Matching:   matchingHandler.NewHandler(matchingService),
		Export:     exportHandler.NewHandler(exportService),
		Me:         userHandler.NewHandler(userService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", srv.Addr).Str("app", cfg.App.Name).Msg("starting server")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func newReceiptStore(ctx context.Context, cfg *config.Config) (receipt.Store, error) {
	if cfg.Storage.Bucket != "" {
		gcs, err := receipt.NewGCS(ctx, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("open receipts bucket: %w", err)
		}

		return gcs, nil
	}

	local, err := receipt.NewLocal(cfg.Storage.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("open receipts dir: %w", err)
	}

	return local, nil
}
