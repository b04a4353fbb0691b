package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/authsession"
)

type AuthSessionRouteConfig struct {
	Handler *authsession.Handler
	Guards  *Guards
}

// SetupAuthSessionRoutes registers login bookkeeping. Creating a session only
// needs a valid token since the caller has no session id yet.
func SetupAuthSessionRoutes(api *gin.RouterGroup, cfg *AuthSessionRouteConfig) {
	g := cfg.Guards
	sessions := api.Group("/auth/sessions")
	sessions.POST("",
		g.Auth.RequireAuth(),
		g.RateLimiter.Limit("auth"),
		g.can(permission.ResourceAuthSession, permission.ActionWrite),
		cfg.Handler.CreateSession,
	)

	sessions.Use(g.authenticated()...)
	{
		sessions.GET("", g.can(permission.ResourceAuthSession, permission.ActionRead), cfg.Handler.ListSessions)
		sessions.DELETE("", g.can(permission.ResourceAuthSession, permission.ActionWrite), cfg.Handler.EndAllSessions)
		sessions.DELETE("/:id", g.can(permission.ResourceAuthSession, permission.ActionWrite), cfg.Handler.EndSession)
	}
}
