// Command server wires the incident report portal: config, stores, services,
// and the HTTP router. Business logic lives in the internal packages; main
// only composes them and owns the process lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"appguard/internal/evidence"
	"appguard/internal/identity"
	identityservice "appguard/internal/identity/service"
	identitystore "appguard/internal/identity/store"
	"appguard/internal/jwttoken"
	"appguard/internal/platform/config"
	"appguard/internal/platform/httpserver"
	"appguard/internal/platform/logger"
	platformredis "appguard/internal/platform/redis"
	"appguard/internal/report"
	reportmetrics "appguard/internal/report/metrics"
	reportservice "appguard/internal/report/service"
	reportstore "appguard/internal/report/store"
	authmw "appguard/pkg/platform/middleware/auth"
	"appguard/pkg/platform/middleware/metadata"
	"appguard/pkg/platform/middleware/request"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx := context.Background()

	var db *sql.DB
	var reports reportstore.Store
	var users identitystore.Store
	if cfg.Database.URL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		reportPG := reportstore.NewPostgres(db)
		userPG := identitystore.NewPostgres(db)
		if err := reportPG.EnsureSchema(ctx); err != nil {
			log.Error("migrate reports", "error", err)
			os.Exit(1)
		}
		if err := userPG.EnsureSchema(ctx); err != nil {
			log.Error("migrate users", "error", err)
			os.Exit(1)
		}
		reports = reportPG
		users = userPG
		log.Info("using postgres stores")
	} else {
		reports = reportstore.NewInMemory()
		users = identitystore.NewInMemory()
		log.Info("using in-memory stores")
	}

	if cfg.Auth.SeedDemoUsers {
		if err := identitystore.SeedDemoUsers(ctx, users, log); err != nil {
			log.Error("seed demo users", "error", err)
			os.Exit(1)
		}
	}

	reportOpts := []reportservice.Option{
		reportservice.WithLogger(log),
		reportservice.WithMetrics(reportmetrics.New()),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		reportOpts = append(reportOpts, reportservice.WithStatsCache(
			reportservice.NewRedisStatsCache(redisClient, cfg.Redis.StatsCacheTTL, log)))
		log.Info("stats cache enabled", "ttl", cfg.Redis.StatsCacheTTL)
	}

	var blobs evidence.BlobStore
	if cfg.Storage.Endpoint != "" {
		blobs, err = evidence.NewMinIOStore(ctx, cfg.Storage)
		if err != nil {
			log.Error("connect object storage", "error", err)
			os.Exit(1)
		}
		log.Info("evidence stored in object storage", "bucket", cfg.Storage.Bucket)
	} else {
		blobs = evidence.NewLocalStore(cfg.Storage.LocalDir)
		log.Info("evidence stored on disk", "dir", cfg.Storage.LocalDir)
	}

	jwtSvc := jwttoken.NewService(cfg.Auth.JWTSigningKey, "appguard", "appguard-api")
	requireAuth := authmw.RequireAuth(jwttoken.NewServiceAdapter(jwtSvc), log)

	reportSvc := report.NewService(reports, reportOpts...)
	identitySvc := identity.NewService(users, jwtSvc, cfg.Auth.TokenTTL, identityservice.WithLogger(log))
	evidenceSvc := evidence.New(blobs,
		evidence.WithLogger(log),
		evidence.WithMaxBytes(cfg.Storage.MaxUploadBytes))

	router := chi.NewRouter()
	router.Use(request.ID)
	router.Use(metadata.Collect)
	router.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", request.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthz(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())

	identity.NewHandler(identitySvc, log).Register(router, requireAuth)
	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		report.NewHandler(reportSvc, log).Register(r)
		evidence.NewHandler(evidenceSvc, log).Register(r)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// healthz reports liveness plus dependency health. The process is healthy
// without redis; a configured-but-unreachable dependency degrades the check.
func healthz(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
				return
			}
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
