package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/mobimama/mobimama-api/internal/handler"
	adminHandler "github.com/mobimama/mobimama-api/internal/handler/admin"
	authHandler "github.com/mobimama/mobimama-api/internal/handler/auth"
	motherHandler "github.com/mobimama/mobimama-api/internal/handler/mother"
	publicHandler "github.com/mobimama/mobimama-api/internal/handler/public"
	staffHandler "github.com/mobimama/mobimama-api/internal/handler/staff"
	"github.com/mobimama/mobimama-api/internal/i18n"
	"github.com/mobimama/mobimama-api/internal/middleware"
	"github.com/mobimama/mobimama-api/internal/model"
	"github.com/mobimama/mobimama-api/internal/session"
	"github.com/mobimama/mobimama-api/pkg/logger"
	"github.com/mobimama/mobimama-api/pkg/metrics"
)

// AdminPrefix is the non-obvious admin panel namespace, kept from the
// deployed app so existing bookmarks keep working.
const AdminPrefix = "/mobi-panel-888x"

type Config struct {
	RateLimit      rate.Limit
	RateBurst      int
	RequestTimeout time.Duration
	CORS           middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
}

func New(
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
	resolver middleware.SessionResolver,
	sessions session.Store,
	bundle *i18n.Bundle,
	authH *authHandler.Handler,
	publicH *publicHandler.Handler,
	motherH *motherHandler.Handler,
	staffH *staffHandler.Handler,
	adminH *adminHandler.Handler,
) *Router {
	model.RegisterValidations()

	engine := gin.New()

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})

	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(m),
		limiter.RateLimit(),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.Authenticate(resolver),
		middleware.Language(bundle, sessions),
	)

	engine.GET("/healthz", handler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	publicH.RegisterAudioRoute(engine)

	api := engine.Group("/api/v1")
	{
		publicH.RegisterRoutes(api)
		authH.RegisterRoutes(api.Group("/auth"))

		mother := api.Group("/mother", middleware.RequireRole(model.RoleMother))
		motherH.RegisterRoutes(mother)

		staff := api.Group("/staff", middleware.RequireRole(model.RoleClinic, model.RoleNurse))
		staffH.RegisterRoutes(staff)
	}

	panel := engine.Group(AdminPrefix)
	{
		panel.POST("/login", authH.AdminLogin)

		guarded := panel.Group("", middleware.RequireRole(model.RoleAdmin))
		adminH.RegisterRoutes(guarded)
	}

	return &Router{engine: engine}
}

// Engine exposes the configured gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
