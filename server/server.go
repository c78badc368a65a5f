// Package server exposes the discovery pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iconick/hiddengems/discover"
	"github.com/iconick/hiddengems/install"
	"github.com/iconick/hiddengems/internal/core"
)

// Discoverer runs discovery queries.
type Discoverer interface {
	Query(ctx context.Context, req discover.Request) (*discover.Result, error)
}

// InstallResolver builds install trigger URLs.
type InstallResolver interface {
	InstallURL(ctx context.Context, identifier string) (string, error)
}

// HealthReporter exposes per-host circuit breaker states.
type HealthReporter interface {
	States() map[string]string
}

// CacheReporter exposes the live entry count of the result cache.
type CacheReporter interface {
	Len() int
}

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	discoverer Discoverer
	installer  InstallResolver
	health     HealthReporter
	cache      CacheReporter
	log        *zap.Logger
}

// NewHandlers creates the handler set. health and cache may be nil when
// the corresponding component is not in play; log may be nil.
func NewHandlers(d Discoverer, i InstallResolver, health HealthReporter, cache CacheReporter, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{discoverer: d, installer: i, health: health, cache: cache, log: log}
}

// Router builds the gin engine with all routes registered.
func (h *Handlers) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/gems", h.QueryGems)
	api.GET("/gems/:slug/install", h.ResolveInstall)

	return router
}

// Health reports liveness plus upstream breaker states.
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.health != nil {
		body["upstreams"] = h.health.States()
	}
	if h.cache != nil {
		body["cache_entries"] = h.cache.Len()
	}
	c.JSON(http.StatusOK, body)
}

// QueryGems runs one discovery query from query-string parameters.
func (h *Handlers) QueryGems(c *gin.Context) {
	var req discover.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.discoverer.Query(c.Request.Context(), req)
	if err != nil {
		h.log.Warn("discovery query failed", zap.Error(err))
		h.renderFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ResolveInstall returns the signed install trigger URL for one package.
func (h *Handlers) ResolveInstall(c *gin.Context) {
	slug := c.Param("slug")

	installURL, err := h.installer.InstallURL(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, install.ErrEmptyIdentifier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.renderFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug, "install_url": installURL})
}

// renderFailure maps the failure taxonomy onto HTTP statuses.
func (h *Handlers) renderFailure(c *gin.Context, err error) {
	status := http.StatusBadGateway
	retryable := false

	if f, ok := core.AsFailure(err); ok {
		retryable = f.Retryable
		switch f.Kind {
		case core.UpstreamTimeout:
			status = http.StatusGatewayTimeout
		case core.PermissionDenied:
			status = http.StatusForbidden
		}
	}

	c.JSON(status, gin.H{"error": err.Error(), "retryable": retryable})
}
