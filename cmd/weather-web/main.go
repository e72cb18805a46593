package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/0nxb/my-weather-app/internal/config"
	"github.com/0nxb/my-weather-app/internal/httpapi"
	"github.com/0nxb/my-weather-app/internal/observability"
	"github.com/0nxb/my-weather-app/internal/ratelimit"
	"github.com/0nxb/my-weather-app/web"
)

const serviceName = "weather-web"

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	tel, err := observability.Setup(context.Background(), serviceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to set up observability", "error", err)
		os.Exit(1)
	}

	trusted, err := ratelimit.ParsePrefixes(cfg.Web.TrustedProxies)
	if err != nil {
		slog.Error("invalid trusted proxies", "error", err)
		os.Exit(1)
	}

	if cfg.Web.Upstream == "" {
		slog.Warn("no weather upstream configured, lookups will answer 503")
	}
	srv, err := httpapi.NewServer(httpapi.Options{
		Upstream: cfg.Web.Upstream,
		Assets:   web.Static(),
		DistDir:  cfg.Web.DistDir,
		Limiter: ratelimit.New(ratelimit.LimiterConfig{
			RPS:     cfg.Web.RateLimit.RPS,
			Burst:   cfg.Web.RateLimit.Burst,
			MaxKeys: cfg.Web.RateLimit.MaxKeys,
		}),
		ClientKey: ratelimit.KeyByClient(trusted),
		Telemetry: tel,
	})
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(httpapi.CorrelationID)
	r.Use(tel.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Web.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", httpapi.CorrelationHeader},
		ExposedHeaders: []string{httpapi.CorrelationHeader, "Trace-ID"},
		MaxAge:         300,
	}))
	r.NotFound(httpapi.NotFound)

	r.Handle("/metrics", tel.Handler())
	srv.RegisterRoutes(r)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Web.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("weather-web started", "port", cfg.Web.Port, "upstream", cfg.Web.Upstream)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	if err := tel.Shutdown(ctx); err != nil {
		slog.Warn("telemetry shutdown error", "error", err)
	}
}
