package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/nba-totals/internal/metrics"
	"github.com/maxviazov/nba-totals/internal/service"
)

// APIV1Prefix is the base path shared by every public route.
const APIV1Prefix = "/api/v1"

// EngineOptions configures the middleware stack of NewEngine.
type EngineOptions struct {
	Logger      zerolog.Logger
	Metrics     *metrics.Recorder
	MetricsPath string
}

// NewEngine builds a gin engine with recovery, request IDs, access logs and, when a recorder
// is given, request metrics plus the scrape endpoint.
func NewEngine(opts EngineOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(opts.Logger))
	if opts.Metrics != nil {
		r.Use(Metrics(opts.Metrics))
		if opts.MetricsPath != "" {
			r.GET(opts.MetricsPath, gin.WrapH(opts.Metrics.Handler()))
		}
	}
	return r
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, upstream Pinger, svc service.StatsService) {
	h := NewHealthHandler(upstream)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewTeamHandler(svc).Register(api)
		NewPlayerHandler(svc).Register(api)
	}
}
