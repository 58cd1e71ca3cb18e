package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/peerprep/backend/internal/api/http"
	"github.com/peerprep/backend/internal/api/http/handlers"
	"github.com/peerprep/backend/internal/auth"
	"github.com/peerprep/backend/internal/config"
	"github.com/peerprep/backend/internal/events"
	"github.com/peerprep/backend/internal/observability"
	"github.com/peerprep/backend/internal/persistence"
	"github.com/peerprep/backend/internal/repository"
	"github.com/peerprep/backend/internal/repository/memory"
	"github.com/peerprep/backend/internal/service"
	"github.com/peerprep/backend/internal/worker"
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users     repository.UserRepository
	questions repository.QuestionRepository
	resets    repository.PasswordResetRepository
	checks    map[string]handlers.Pinger
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	st := openStores(ctx, cfg, pg, logger)
	defer st.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:          st.users,
		PasswordResetRepo: st.resets,
		Tokens:            tokens,
		Events:            dispatcher,
		Logger:            logger,
	})
	questionService := service.NewQuestionService(st.questions, dispatcher, logger)

	authMiddleware := auth.NewMiddleware(tokens, auth.NewSessionResolver(st.users), auth.MiddlewareOptions{
		CookieName: cfg.Auth.CookieName,
		Logger:     logger,
		Observer:   metrics,
	})

	loginLimiter := httptransport.NewLoginRateLimiter(cfg.RateLimit, logger)
	defer loginLimiter.Stop()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st.checks),
		Auth: handlers.NewAuthHandler(userService, handlers.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		}),
		Users:          handlers.NewUsersHandler(userService),
		Questions:      handlers.NewQuestionsHandler(questionService),
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		Metrics:        observability.Handler(registry),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStores picks Postgres and Redis backed repositories when a DSN is set and
// in-memory ones otherwise.
func openStores(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) stores {
	if !pg.Enabled() {
		return stores{
			users:     memory.NewUserRepository(),
			questions: memory.NewQuestionRepository(),
			resets:    memory.NewPasswordResetRepository(),
			checks:    map[string]handlers.Pinger{},
			close:     func() {},
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	return stores{
		users:     repository.NewUserRepository(pg.Pool),
		questions: repository.NewQuestionRepository(pg.Pool),
		resets:    repository.NewPasswordResetRepository(rdb.Client),
		checks: map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    rdb,
		},
		close: rdb.Close,
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
