package router

import (
	"net/http"
	"time"

	apphttp "intake_backend/internal/http"
	"intake_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// New builds the gin engine with shared middleware, health and metrics
// endpoints, and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if corsCfg, ok := corsConfig(app); ok {
		engine.Use(cors.New(corsCfg))
	}

	engine.GET("/api/health", healthHandler(app.Health))
	if app.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{})))
	}

	limiter := httpkit.NewIPRateLimiter(
		rate.Limit(app.Config.GetRateLimitRPS()),
		app.Config.GetRateLimitBurst(),
		app.Logger,
	)

	routerCtx := &apphttp.RouterContext{
		V1:          engine.Group("/api/v1"),
		RateLimiter: limiter,
	}

	for _, module := range app.Modules {
		app.Logger.Info("registering module routes", "module", module.Name())
		module.RegisterRoutes(routerCtx)
	}

	return engine
}

func healthHandler(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			if err := health.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// corsConfig returns false when no origin is allowed, since cors.New panics
// on an empty origin list.
func corsConfig(app *apphttp.App) (cors.Config, bool) {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpkit.RequestIDHeader},
		ExposeHeaders: []string{httpkit.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	switch {
	case app.Config.GetCORSAllowAll():
		cfg.AllowAllOrigins = true
	case len(app.Config.GetCORSOrigins()) > 0:
		cfg.AllowOrigins = app.Config.GetCORSOrigins()
	default:
		return cors.Config{}, false
	}

	return cfg, true
}
