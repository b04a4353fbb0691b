package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/testutil"
)

func TestHealthHandler_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
	}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.HealthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "ok", body.Dependencies["database"])
}

func TestHealthHandler_DependencyDown(t *testing.T) {
	handler := NewHealthHandler(map[string]Pinger{
		"database": PingFunc(func(context.Context) error { return nil }),
		"redis":    PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	handler.HealthCheck(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
