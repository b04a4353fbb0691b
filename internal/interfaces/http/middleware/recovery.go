package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

var redactedHeaders = []string{constants.HeaderAuthorization, "Cookie"}

func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if isBrokenConnection(recovered) {
			log.Warnw("client connection dropped mid-request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", c.GetString(constants.ContextKeyRequestID),
			"headers", dumpHeaders(c.Request),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
	})
}

func dumpHeaders(r *http.Request) []string {
	raw, _ := httputil.DumpRequest(r, false)
	lines := strings.Split(string(raw), "\r\n")
	for i, line := range lines {
		name, _, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		for _, h := range redactedHeaders {
			if strings.EqualFold(name, h) {
				lines[i] = name + ": *"
			}
		}
	}
	return lines
}

func isBrokenConnection(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}

	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}

// ErrorHandler renders the last error attached with c.Error when the handler wrote nothing.
func ErrorHandler(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Errorw("handler error occurred",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err)

		if !c.Writer.Written() {
			utils.ErrorResponseWithError(c, err)
		}
	}
}
