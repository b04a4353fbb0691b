package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/auth"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// TokenVerifier verifies identity-provider bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// SessionToucher stamps activity on an auth session and fails with
// not_found once the session was ended.
type SessionToucher interface {
	Execute(ctx context.Context, sessionID string) error
}

type AuthMiddleware struct {
	verifier TokenVerifier
	toucher  SessionToucher
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, toucher SessionToucher, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		toucher:  toucher,
		logger:   logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller identity in the context.
// The auth session id, when sent in X-Session-ID, is stored but not checked.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID())
		c.Set(constants.ContextKeyUserRole, claims.Role.String())
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserName, claims.Name)
		if sid := c.GetHeader(constants.HeaderXSessionID); sid != "" {
			c.Set(constants.ContextKeySessionID, sid)
		}

		c.Next()
	}
}

// RequireLiveSession rejects requests whose auth session was ended, e.g.
// evicted by the concurrent session limit. Requests without a session id pass.
func (m *AuthMiddleware) RequireLiveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString(constants.ContextKeySessionID)
		if sid == "" {
			c.Next()
			return
		}

		if err := m.toucher.Execute(c.Request.Context(), sid); err != nil {
			if errors.IsNotFoundError(err) {
				utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("auth session has ended"))
				c.Abort()
				return
			}
			m.logger.Warnw("failed to touch auth session", "session_id", sid, "error", err)
		}

		c.Next()
	}
}
