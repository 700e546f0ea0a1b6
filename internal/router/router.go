package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler/health"
	"github.com/jwalitptl/clinic-api/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler also owns routes that stay open when authentication is on
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimit      middleware.RateLimiterConfig
	AllowedOrigins []string
	MaxBodySize    int64
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	health    *health.Handler
	metrics   *prometheus.Handler
	public    []PublicHandler
	resources []Handler
}

// NewRouter builds the engine and its global middleware. A nil auth leaves every route open.
func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	metricsH *prometheus.Handler,
	public []PublicHandler,
	resources []Handler,
	config RouterConfig,
) *Router {
	engine := gin.New()

	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultMaxBodySize
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		metricsH.Middleware(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.AllowedOrigins),
	)

	if config.RateLimit.RPS > 0 {
		engine.Use(middleware.NewRateLimiter(config.RateLimit).RateLimit())
	}
	engine.Use(middleware.SizeLimit(config.MaxBodySize))

	return &Router{
		engine:    engine,
		auth:      auth,
		health:    healthH,
		metrics:   metricsH,
		public:    public,
		resources: resources,
	}
}

func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")
	for _, h := range r.public {
		h.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	if r.auth != nil {
		protected.Use(r.auth.Authenticate())
	}
	for _, h := range r.public {
		h.RegisterRoutes(protected)
	}
	for _, h := range r.resources {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
