package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/sessioncache"
)

type SessionCacheRouteConfig struct {
	Handler *sessioncache.Handler
	Guards  *Guards
}

func SetupSessionCacheRoutes(api *gin.RouterGroup, cfg *SessionCacheRouteConfig) {
	g := cfg.Guards
	read := g.can(permission.ResourceCache, permission.ActionRead)
	write := g.can(permission.ResourceCache, permission.ActionWrite)

	cache := api.Group("/cache")
	cache.Use(g.authenticated()...)
	{
		cache.GET("/resume", read, cfg.Handler.ResumeTarget)
		cache.POST("/reconcile", write, cfg.Handler.Reconcile)

		cache.PUT("", g.RateLimiter.Limit("cache-writes"), write, cfg.Handler.Save)
		cache.GET("", read, cfg.Handler.Load)
		cache.PATCH("", g.RateLimiter.Limit("cache-writes"), write, cfg.Handler.Update)
		cache.DELETE("", write, cfg.Handler.Clear)
	}
}
