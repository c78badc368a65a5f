// Command gemsd serves the hidden gems discovery API.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iconick/hiddengems/client"
	"github.com/iconick/hiddengems/config"
	"github.com/iconick/hiddengems/discover"
	"github.com/iconick/hiddengems/install"
	"github.com/iconick/hiddengems/internal/gemcache"
	"github.com/iconick/hiddengems/internal/metrics"
	"github.com/iconick/hiddengems/internal/wporg"
	"github.com/iconick/hiddengems/server"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.LoadOrDefault()

	log, err := newLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	opts := []client.Option{client.WithTimeout(cfg.Upstream.Timeout)}
	if cfg.Upstream.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(cfg.Upstream.UserAgent))
	}
	if cfg.Upstream.RateLimit > 0 {
		opts = append(opts, client.WithRateLimit(cfg.Upstream.RateLimit))
	}
	upstream := client.NewBreakerClient(client.NewClient(opts...))

	registry := wporg.New(cfg.Upstream.URL, upstream)
	cache := gemcache.New(cfg.Cache.Size, cfg.Cache.TTL)
	m := metrics.New(nil)

	service := discover.New(registry, cache, discover.Options{
		BulkPerPage: cfg.Pool.BulkPerPage,
		Capacity:    cfg.Pool.Capacity,
		Thresholds:  cfg.Tiers.Thresholds(),
	}, log, m)

	resolver := install.NewResolver(cfg.Install.ActionURL, installSecret(cfg, log), nil)

	handlers := server.NewHandlers(service, resolver, upstream, cache, log)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: handlers.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening",
			zap.String("addr", addr),
			zap.String("upstream", cfg.Upstream.URL),
			zap.Duration("cache_ttl", cfg.Cache.TTL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	return zc.Build()
}

// installSecret uses the configured secret, or generates an ephemeral one
// so signed URLs stay valid for the life of the process.
func installSecret(cfg *config.Config, log *zap.Logger) []byte {
	if cfg.Install.Secret != "" {
		return []byte(cfg.Install.Secret)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatal("generating install secret", zap.Error(err))
	}
	log.Warn("INSTALL_SECRET unset, using ephemeral secret")
	return secret
}
