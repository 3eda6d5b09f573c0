package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/leafsw/tipbot-go/internal/bot"
	"github.com/leafsw/tipbot-go/internal/buildinfo"
	"github.com/leafsw/tipbot-go/internal/config"
	"github.com/leafsw/tipbot-go/internal/directory"
	"github.com/leafsw/tipbot-go/internal/ledger"
	"github.com/leafsw/tipbot-go/internal/logger"
	"github.com/leafsw/tipbot-go/internal/metrics"
	"github.com/leafsw/tipbot-go/internal/modules/rain"
	"github.com/leafsw/tipbot-go/internal/modules/wallet"
	"github.com/leafsw/tipbot-go/internal/ratelimit"
	"github.com/leafsw/tipbot-go/internal/roster"
	"github.com/leafsw/tipbot-go/internal/sentry"
	"github.com/leafsw/tipbot-go/internal/webhook"
)

const (
	httpReadTimeout  = 10 * time.Second
	httpWriteTimeout = 60 * time.Second // bulk commands fan out N ledger calls
	httpIdleTimeout  = 120 * time.Second

	rateLimiterCleanupPeriod = 5 * time.Minute
	sentryFlushTimeout       = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.WithField("version", buildinfo.Version).Info("Starting tipbot server")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Fatal("Failed to initialize Sentry")
	}
	if sentry.IsEnabled() {
		defer sentry.Flush(sentryFlushTimeout)
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	directoryClient := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryToken, cfg.GatewayTimeout, cfg.GatewayMaxRetries, log, m)
	ledgerClient := ledger.NewClient(cfg.LedgerBaseURL, cfg.LedgerToken, cfg.GatewayTimeout, cfg.GatewayMaxRetries, log, m)
	log.WithField("directory", cfg.DirectoryBaseURL).
		WithField("ledger", cfg.LedgerBaseURL).
		Info("Gateway clients created")

	selector := roster.NewSelector(directoryClient, cfg.ExclusionSet(), log)

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // distribution randomness, not crypto

	botRegistry := bot.NewRegistry()
	botRegistry.Register(wallet.NewHandler(directoryClient, ledgerClient, log, m))
	botRegistry.Register(rain.NewHandler(selector, directoryClient, ledgerClient, rng, log, m))

	userLimiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyConfig{
		Capacity:      cfg.UserRateBurst,
		RefillRate:    cfg.UserRateRefill,
		CleanupPeriod: rateLimiterCleanupPeriod,
	})
	defer userLimiter.Stop()
	userLimiter.OnDrop(m.RecordRateLimited)

	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Token:       cfg.WebhookToken,
		Registry:    botRegistry,
		UserLimiter: userLimiter,
		Logger:      log,
		Metrics:     m,
	})
	log.Info("Webhook handler created")

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, webhookHandler, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.WithField("signal", sig.String()).Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}
