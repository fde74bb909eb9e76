// Command api serves the employee roster HTTP API.
//
// @title                       Employee Roster API
// @version                     1.0
// @description                 Employee records with admin-only management, JWT authentication and paginated listing.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/roster-hq/employee-roster/internal/api"
	"github.com/roster-hq/employee-roster/internal/api/handler"
	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/ports"
	"github.com/roster-hq/employee-roster/internal/core/service"
	"github.com/roster-hq/employee-roster/internal/infrastructure/db/memory"
	mongostore "github.com/roster-hq/employee-roster/internal/infrastructure/db/mongo"
	"github.com/roster-hq/employee-roster/internal/infrastructure/db/postgres"
	redisstore "github.com/roster-hq/employee-roster/internal/infrastructure/db/redis"
	"github.com/roster-hq/employee-roster/internal/infrastructure/queue"
	"github.com/roster-hq/employee-roster/internal/infrastructure/tracing"
	"github.com/roster-hq/employee-roster/internal/pkg/config"
	"github.com/roster-hq/employee-roster/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		File: logger.Rotation{
			Path:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})

	if cfg.Tracing.Endpoint != "" {
		tp, err := tracing.Init(ctx, tracing.Config{
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.ServiceName,
			Environment: cfg.Env,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown")
			}
		}()
		log.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("tracing enabled")
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	health := st.health
	var limiter ports.RateLimiter
	if cfg.RateLimitActive() {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: cfg.ServiceName,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		limiter = redisstore.NewTokenBucket(rdb, redisstore.RateLimitConfig{
			Capacity:       cfg.RateLimit.Capacity,
			RefillTokens:   1,
			RefillInterval: cfg.RateLimit.RefillInterval,
		})
		health = append(health, handler.Dependency{Name: "redis", Ping: redisstore.Pinger(rdb)})
		log.Info().Str("addr", cfg.Redis.Addr).Int("capacity", cfg.RateLimit.Capacity).Msg("rate limiting enabled")
	}

	// Audit workers outlive the HTTP server so in-flight events are drained.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewEventService(st.events, log), log).
		WithMetrics(metrics.Dispatcher{})
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(st.users, tokens, cfg.Auth.SecretWord, dispatcher, log)
	userService := service.NewUserService(st.users, service.PageLimits{
		Default: cfg.Pagination.DefaultLimit,
		Max:     cfg.Pagination.MaxLimit,
	}, dispatcher, log)

	e := api.NewRouter(api.Dependencies{
		Log:         log,
		AuthService: authService,
		UserService: userService,
		Tokens:      tokens,
		Limiter:     limiter,
		Health:      health,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

type store struct {
	users  ports.UserRepository
	events ports.EventRepository
	health []handler.Dependency
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		ms, err := mongostore.Open(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			AppName:     cfg.ServiceName,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(ms.Database())
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = ms.Close(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &store{
			users:  users,
			events: mongostore.NewEventRepository(ms.Database()),
			health: []handler.Dependency{{Name: "mongodb", Ping: ms.Ping}},
			close:  func() { _ = ms.Close(context.Background()) },
		}, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN, Debug: cfg.Postgres.Debug})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return &store{
			users:  postgres.NewUserRepository(db),
			events: postgres.NewEventRepository(db),
			health: []handler.Dependency{{
				Name: "postgres",
				Ping: func(ctx context.Context) error { return postgres.Ping(ctx, db) },
			}},
			close: func() { _ = postgres.Close(db) },
		}, nil

	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return &store{
			users:  memory.NewUserRepository(),
			events: memory.NewEventRepository(),
			close:  func() {},
		}, nil
	}
}
