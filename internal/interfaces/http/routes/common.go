package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/middleware"
)

// Guards bundles the middleware every authenticated group needs.
type Guards struct {
	Auth        *middleware.AuthMiddleware
	Permission  *middleware.PermissionMiddleware
	RateLimiter *middleware.RateLimiter
}

// authenticated verifies the token and rejects ended auth sessions.
func (g *Guards) authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Auth.RequireAuth(), g.Auth.RequireLiveSession()}
}

func (g *Guards) can(resource, action string) gin.HandlerFunc {
	return g.Permission.RequirePermission(resource, action)
}
