// @title                       User Service API
// @version                     1.0
// @description                 Administration of user accounts: role-scoped creation and edits, reference-aware deletion.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/api"
	"github.com/campusops/user-service/internal/core/domain"
	"github.com/campusops/user-service/internal/core/service"
	"github.com/campusops/user-service/internal/infrastructure/crypto"
	mongodb "github.com/campusops/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/campusops/user-service/internal/infrastructure/db/redis"
	"github.com/campusops/user-service/internal/infrastructure/metrics"
	"github.com/campusops/user-service/internal/infrastructure/queue"
	"github.com/campusops/user-service/internal/pkg/config"
	"github.com/campusops/user-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "user-service",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	accounts := mongodb.NewAccountRepository(db)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return err
	}
	dependents := mongodb.NewDependentStore(db)
	if err := dependents.EnsureIndexes(ctx, domain.DependentRelations); err != nil {
		return err
	}

	auditDispatcher := queue.NewAuditDispatcher(cfg.Accounts.AuditWorkers, mongodb.NewAuditRepository(db), logger.For("audit"))
	auditDispatcher.Start(ctx)
	// Runs after the server has drained and before Mongo disconnects, so
	// events from in-flight requests are still recorded.
	defer auditDispatcher.Stop()

	accountMetrics := metrics.NewAccountRecorder()
	accountService := service.NewAccountService(
		accounts,
		service.NewReferenceScanner(dependents, domain.DependentRelations, cfg.Accounts.ScanFailClosed, accountMetrics, logger.For("reference_scanner")),
		service.NewReferenceRemediator(dependents, domain.DependentRelations, accountMetrics, logger.For("reference_remediator")),
		crypto.NewBcryptHasher(cfg.Accounts.BcryptCost),
		redisdb.NewDeletionLock(rdb, cfg.Accounts.DeleteLockTTL),
		auditDispatcher,
		accountMetrics,
		logger.For("accounts"),
	)

	e := api.NewRouter(db, rdb, accountService, cfg.JWTSecret, logger.For("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
