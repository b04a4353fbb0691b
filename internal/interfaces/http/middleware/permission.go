package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/authorization"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// PolicyEnforcer decides whether a role may act on a resource.
type PolicyEnforcer interface {
	Enforce(subject, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(constants.ContextKeyUserID)
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		allowed, err := m.enforcer.Enforce(role.String(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
