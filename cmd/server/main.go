// The KYC case management server. Wires configuration, storage, and the HTTP
// interface together and runs until interrupted.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	appservice "github.com/openkyc/kyc/internal/application/service"
	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/internal/infrastructure/audit"
	"github.com/openkyc/kyc/internal/infrastructure/cache"
	"github.com/openkyc/kyc/internal/infrastructure/crypto"
	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	"github.com/openkyc/kyc/internal/infrastructure/persistence/postgres"
	redisinfra "github.com/openkyc/kyc/internal/infrastructure/persistence/redis"
	"github.com/openkyc/kyc/internal/infrastructure/ratelimit"
	httpiface "github.com/openkyc/kyc/internal/interfaces/http"
	"github.com/openkyc/kyc/internal/interfaces/http/handlers"
	"github.com/openkyc/kyc/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal(context.Background(), "server exited with error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger logger.Logger) error {
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	db, err := postgres.NewDBConnection(ctx, &cfg.Database, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	redisConn, err := redisinfra.NewRedisConnection(ctx, &cfg.Redis, appLogger)
	if err != nil {
		return err
	}
	defer func() { _ = redisConn.Close() }()

	metrics := monitoring.NewMetrics()

	tokens, err := crypto.NewJWTManager(&cfg.JWT)
	if err != nil {
		return err
	}

	limiter := ratelimit.NewLimiter(ratelimit.DefaultLimits(), appLogger)
	defer limiter.Close()

	throttle := redisinfra.NewLoginThrottle(
		redisConn.Client(),
		cfg.Auth.MaxLoginAttempts,
		time.Duration(cfg.Auth.LockoutWindow)*time.Second,
		appLogger,
	)

	customerRepo := postgres.NewCustomerRepository(db.DB(), appLogger)
	alertRepo := postgres.NewAlertRepository(db.DB(), appLogger)
	txnRepo := postgres.NewTransactionRepository(db.DB(), appLogger)
	userRepo := postgres.NewUserRepository(db.DB(), appLogger)
	auditRepo := postgres.NewAuditRepository(db.DB(), appLogger)

	auditSinks := []audit.Sink{audit.NewDBSink(auditRepo), audit.NewMetricsSink(metrics)}
	if cfg.Kafka.Enabled {
		producer := audit.NewKafkaProducer(cfg.Kafka, cfg.JWT.Secret, appLogger)
		defer func() { _ = producer.Close() }()
		auditSinks = append(auditSinks, producer)
	}
	recorder := audit.NewRecorder(appLogger, auditSinks...)

	customerCache := cache.NewCustomerCache()

	customerSvc := appservice.NewCustomerAppService(customerRepo, alertRepo, txnRepo, customerCache, recorder, appLogger)
	riskSvc := appservice.NewRiskAppService(customerRepo, alertRepo, customerCache, recorder, appLogger)
	alertSvc := appservice.NewAlertAppService(alertRepo, customerRepo, customerCache, recorder, appLogger)
	txnSvc := appservice.NewTransactionAppService(txnRepo, customerRepo, alertRepo, customerCache, recorder, appLogger)
	authSvc := appservice.NewAuthAppService(userRepo, throttle, tokens, recorder, appLogger)
	auditSvc := appservice.NewAuditAppService(auditRepo, recorder, appLogger)

	router := httpiface.NewRouter(&cfg.Server, appLogger, httpiface.Handlers{
		Health: handlers.NewHealthHandler(version, map[string]handlers.DependencyChecker{
			"postgres": db,
			"redis":    redisConn,
		}),
		Auth:        handlers.NewAuthHandler(authSvc),
		Customer:    handlers.NewCustomerHandler(customerSvc),
		Risk:        handlers.NewRiskHandler(riskSvc),
		Alert:       handlers.NewAlertHandler(alertSvc),
		Transaction: handlers.NewTransactionHandler(txnSvc),
		Audit:       handlers.NewAuditHandler(auditSvc),
	}, tokens, limiter, metrics, tracing.Tracer())
	router.SetupRoutes()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return router.Start(gctx)
	})
	return g.Wait()
}
