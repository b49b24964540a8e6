package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fintrack/fintrack/internal/adapter/http"
	"github.com/fintrack/fintrack/internal/adapter/http/handler"
	postgresRepo "github.com/fintrack/fintrack/internal/adapter/repository/postgres"
	redisRepo "github.com/fintrack/fintrack/internal/adapter/repository/redis"
	"github.com/fintrack/fintrack/internal/infrastructure/config"
	"github.com/fintrack/fintrack/internal/infrastructure/logger"
	"github.com/fintrack/fintrack/internal/infrastructure/metrics"
	"github.com/fintrack/fintrack/internal/infrastructure/postgres"
	"github.com/fintrack/fintrack/internal/infrastructure/redis"
	"github.com/fintrack/fintrack/internal/matcher"
	"github.com/fintrack/fintrack/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Run migrations before accepting traffic
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	accountRepo := postgresRepo.NewAccountRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	plannedPaymentRepo := postgresRepo.NewPlannedPaymentRepository(pool)
	mappingRuleRepo := postgresRepo.NewMappingRuleRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Keyword matchers are built lazily per workspace from stored rules.
	matchers := matcher.NewRegistry(mappingRuleRepo.ListByWorkspace)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, transactionRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, retrier, accountRepo, categoryRepo, transactionRepo, auditRepo, idGen)
	importUC := usecase.NewImportUseCase(ledgerUC, matchers)
	budgetUC := usecase.NewBudgetUseCase(txManager, budgetRepo, categoryRepo, transactionRepo, auditRepo, idGen)
	calendarUC := usecase.NewCalendarUseCase(accountRepo, plannedPaymentRepo, idGen)

	// Initialize metrics and handlers
	m := metrics.New()
	accountHandler := handler.NewAccountHandler(accountUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	transactionHandler := handler.NewTransactionHandler(ledgerUC, importUC, m)
	budgetHandler := handler.NewBudgetHandler(budgetUC, m)
	calendarHandler := handler.NewCalendarHandler(calendarUC, m, cfg.ForecastMaxDays)
	auditHandler := handler.NewAuditHandler(auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		BudgetHandler:      budgetHandler,
		CalendarHandler:    calendarHandler,
		AuditHandler:       auditHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Logger:             log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
