package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leafsw/tipbot-go/internal/buildinfo"
	"github.com/leafsw/tipbot-go/internal/config"
	"github.com/leafsw/tipbot-go/internal/webhook"
)

const readinessProbeTimeout = 3 * time.Second

// setupRoutes configures all HTTP routes.
func setupRoutes(router *gin.Engine, cfg *config.Config, webhookHandler *webhook.Handler, registry *prometheus.Registry) {
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/leafsw/tipbot-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe: the process is up. Never checks dependencies.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe: both upstream gateways answer HTTP at all. A cheap
	// HEAD to the base URL, not a full API round trip.
	readyHandler := func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), readinessProbeTimeout)
		defer cancel()

		gateways := gin.H{
			"directory": probe(checkCtx, cfg.DirectoryBaseURL),
			"ledger":    probe(checkCtx, cfg.LedgerBaseURL),
		}

		for _, up := range gateways {
			if up != true {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "not ready",
					"gateways": gateways,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"gateways": gateways,
		})
	}
	router.GET("/readyz", readyHandler)
	router.HEAD("/readyz", readyHandler)

	router.POST("/webhook", webhookHandler.Handle)

	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

// probe reports whether the URL answers any HTTP status below 500.
func probe(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < 500
}
