package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// RequireAdmin aborts with 403 unless the authenticated caller carries the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ParseUserRole(c.GetString(constants.ContextKeyUserRole)).IsAdmin() {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
