package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	adminHandlers "github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/admin"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/authorization"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	HousekeepingHandler *adminHandlers.HousekeepingHandler
	Guards              *Guards
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	g := cfg.Guards

	admin := api.Group("/admin")
	admin.Use(g.authenticated()...)
	admin.Use(authorization.RequireAdmin(), g.can(permission.ResourceHousekeeping, permission.ActionRun))
	{
		admin.POST("/auth-sessions/cleanup", cfg.HousekeepingHandler.CleanupAuthSessions)
		admin.POST("/quiz-sessions/sweep", cfg.HousekeepingHandler.SweepQuizSessions)
	}
}
