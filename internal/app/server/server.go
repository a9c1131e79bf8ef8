package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfai/internal/ai"
	"perfai/internal/db"
	"perfai/internal/domain/analytics"
	"perfai/internal/domain/audit"
	"perfai/internal/domain/chat"
	"perfai/internal/domain/motivation"
	"perfai/internal/domain/performance"
	"perfai/internal/domain/users"
	"perfai/internal/platform/config"
	platformdb "perfai/internal/platform/db"
	"perfai/internal/platform/jobs"
	"perfai/internal/platform/metrics"
	"perfai/internal/transport/http/api"
	authhandler "perfai/internal/transport/http/handlers/auth"
	chathandler "perfai/internal/transport/http/handlers/chat"
	motivationhandler "perfai/internal/transport/http/handlers/motivation"
	performancehandler "perfai/internal/transport/http/handlers/performance"
	"perfai/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New wires the whole application: pool, schema, seed data, AI client,
// domain services, and HTTP routes. Callers own the returned App and must
// Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := platformdb.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()
	aiClient := ai.NewClient(cfg, collector)
	auditRecorder := audit.New(pool)

	usersService := users.NewService(users.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)
	performanceService := performance.NewService(performance.NewStore(pool), aiClient)
	analyticsService := analytics.NewService(analytics.NewStore(pool))
	chatService := chat.NewService(chat.NewStore(pool), aiClient)
	motivationService := motivation.NewService(motivation.NewStore(pool), aiClient)

	jobService := jobs.New(pool, cfg.MotivationRefreshInterval, func(ctx context.Context) (any, error) {
		entry, err := motivationService.GenerateDaily(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"motivationId": entry.ID}, nil
	})
	jobService.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), "Metrics snapshot")
	})

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(usersService).RegisterRoutes(r)
		performancehandler.NewHandler(performanceService, analyticsService, auditRecorder).RegisterRoutes(r)
		chathandler.NewHandler(chatService, auditRecorder).RegisterRoutes(r)
		motivationhandler.NewHandler(motivationService, auditRecorder).RegisterRoutes(r)
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

// Run loads config, builds the app, and serves until the listener fails.
func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("performance AI server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
