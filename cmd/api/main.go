package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/srokkala/Book-Management-App/internal/config"
	"github.com/srokkala/Book-Management-App/internal/db"
	httpx "github.com/srokkala/Book-Management-App/internal/http"
	"github.com/srokkala/Book-Management-App/internal/observability"
	"github.com/srokkala/Book-Management-App/internal/redisclient"
	"github.com/srokkala/Book-Management-App/internal/repo/memory"
	"github.com/srokkala/Book-Management-App/internal/repo/postgres"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing is optional; only wired when a collector endpoint is configured
	tracing := cfg.OTLPEndpoint != ""

	if tracing {
		shutdownTracer, err := observability.InitTracer(context.Background(), "bookapp", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// pick the backing store: postgres when configured, in-memory otherwise
	var stores httpx.Stores
	var ping func() error

	if cfg.DBURL != "" {
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}

		defer pool.Close()

		startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		if err := db.EnsureSchema(startCtx, pool); err != nil {
			cancel()
			log.Error("schema bootstrap failed", "err", err)
			os.Exit(1)
		}

		if err := db.EnsureSeedUser(startCtx, pool, cfg); err != nil {
			cancel()
			log.Error("seed failed", "err", err)
			os.Exit(1)
		}
		cancel()

		stores = httpx.Stores{
			Users: postgres.NewUsersRepo(pool, prom),
			Books: postgres.NewBooksRepo(pool, prom),
		}

		ping = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			return pool.Ping(ctx)
		}
	} else {
		users := memory.NewUsersRepo()
		books := memory.NewBooksRepo()

		if cfg.SeedEmail != "" && cfg.SeedPassword != "" {
			if err := memory.Seed(context.Background(), users, books, cfg.SeedName, cfg.SeedEmail, cfg.SeedPassword); err != nil {
				log.Error("seed failed", "err", err)
				os.Exit(1)
			}
		}

		log.Warn("DB_URL not set, using non-persistent in-memory store")

		stores = httpx.Stores{Users: users, Books: books}
	}

	var rdb *redis.Client

	if cfg.RedisAddr != "" {
		rdb = redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		if err := redisclient.Ping(pingCtx, rdb); err != nil {
			log.Warn("redis unreachable, rate limiting falls back to per-process buckets", "err", err)
		}
		cancel()

		defer rdb.Close()
	}

	router := httpx.NewRouter(log, cfg, stores, httpx.Options{
		Metrics:  prom,
		Gatherer: reg,
		Redis:    rdb,
		Ping:     ping,
		Tracing:  tracing,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
