package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/cache"
	"github.com/rogerio-castellano/catalog-console/internal/config"
	"github.com/rogerio-castellano/catalog-console/internal/db"
	"github.com/rogerio-castellano/catalog-console/internal/http/handlers"
	"github.com/rogerio-castellano/catalog-console/internal/http/metrics"
	rl "github.com/rogerio-castellano/catalog-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-console/internal/http/router"
	"github.com/rogerio-castellano/catalog-console/internal/logging"
	"github.com/rogerio-castellano/catalog-console/internal/redissvc"
	"github.com/rogerio-castellano/catalog-console/internal/repo"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// @title Catalog API
// @version 1.0
// @description REST API serving the product catalog browsed by the catalog console.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadDotEnv()

	flags := pflag.NewFlagSet("catalog-api", pflag.ExitOnError)
	configFile := flags.String("config", "", "Path to a YAML config file")
	flags.String("address", ":8080", "Address to listen on")
	_ = flags.Parse(os.Args[1:])

	v := config.NewViper()
	if err := v.BindPFlag(config.KeyServerAddress, flags.Lookup("address")); err != nil {
		log.Fatalf("Failed to bind address flag: %v", err)
	}
	cfg, err := config.Load(v, *configFile)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.Server, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	handlers.SetLogger(logger)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer func(database *sql.DB) { _ = database.Close() }(database)
		if err := db.EnsureSchema(ctx, database); err != nil {
			return err
		}
		handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
		logger.Info("using postgres product store")
	} else {
		handlers.SetProductRepo(repo.NewInMemoryProductRepository())
		logger.Info("using in-memory product store")
	}

	if cfg.RedisAddr != "" {
		redisService, err := redissvc.Connect(ctx, cfg.RedisAddr, logger)
		if err != nil {
			return err
		}
		defer func() { _ = redisService.Close() }()
		handlers.SetCache(cache.NewRedis(redisService, cfg.CacheTTL))
		logger.Info("using redis response cache", zap.String("addr", cfg.RedisAddr))
	} else {
		handlers.SetCache(cache.NewMemory(cfg.CacheTTL))
	}

	limiter := rl.New(cfg.RateLimit, cfg.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)

	if cfg.JWTSecret == "" {
		logger.Warn("server.jwtSecret is empty, write routes are open")
	}

	server := &http.Server{
		Addr: cfg.Address,
		Handler: router.NewRouter(router.Config{
			JWTSecret: []byte(cfg.JWTSecret),
			Limiter:   limiter,
			Metrics:   metrics.New(),
			Logger:    logger,
		}),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("address", cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
