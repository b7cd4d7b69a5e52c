package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HasbiyallahuJafaru/E-KYC/internal/audit"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/config"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/httpserver"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/logger"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/platform/metrics"
	platformredis "github.com/HasbiyallahuJafaru/E-KYC/internal/platform/redis"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/provider"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/risk"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/verification"
	"github.com/HasbiyallahuJafaru/E-KYC/internal/verification/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	policy, err := loadPolicy(cfg.RiskPolicyPath)
	if err != nil {
		log.Error("load risk policy", "path", cfg.RiskPolicyPath, "error", err)
		os.Exit(1)
	}
	engine := risk.NewEngine(policy)

	prov := provider.New(provider.FactoryConfig{
		Name:    cfg.ProviderName,
		BaseURL: cfg.ProviderBaseURL,
		APIKey:  cfg.ProviderAPIKey,
		Timeout: cfg.ProviderTimeout,
	}, log)

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		prov = provider.NewCached(prov, redisClient.Client, cfg.LookupCacheTTL, log, m)
		log.Info("provider lookup cache enabled", "ttl", cfg.LookupCacheTTL)
	}

	store, pool, err := newStore(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	auditStore := audit.NewMemoryStore()
	publisher, auditInbox := audit.NewBufferedPublisher(auditStore, 256)
	auditWorker := audit.NewWorker(auditStore, auditInbox)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	svc := verification.NewService(store, prov, engine,
		verification.WithLogger(log),
		verification.WithMetrics(m),
		verification.WithAuditPublisher(publisher),
	)

	router := chi.NewRouter()
	handler.New(svc, log, cfg.APIKeyHashes).Register(router)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting e-kyc service", "addr", cfg.Addr, "provider", prov.Name())

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func loadPolicy(path string) (risk.Policy, error) {
	if path == "" {
		return risk.DefaultPolicy(), nil
	}
	return risk.LoadPolicy(path)
}

func newStore(ctx context.Context, postgresURL string) (verification.Store, *pgxpool.Pool, error) {
	if postgresURL == "" {
		return verification.NewInMemoryStore(), nil, nil
	}
	pool, err := pgxpool.New(ctx, postgresURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return verification.NewPostgresStore(pool), pool, nil
}
