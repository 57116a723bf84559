package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"torslanda_locals_backend/internal/auth"
	"torslanda_locals_backend/internal/common"
	"torslanda_locals_backend/internal/config"
	"torslanda_locals_backend/internal/platform/metrics"
	"torslanda_locals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapResolver struct {
	tokens map[string]*shared.Identity
	err    error
	calls  int
}

func (r *mapResolver) ResolveToken(_ context.Context, token string) (*shared.Identity, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if id, ok := r.tokens[token]; ok {
		return id, nil
	}
	return nil, common.ErrNotFound
}

func newAuthRouter(resolver shared.TokenResolver, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	guard := auth.NewGuard(resolver, zap.NewNop())
	r.GET("/me", AuthMiddleware(guard, m, zap.NewNop()), func(c *gin.Context) {
		fromReq, ok := shared.IdentityFromContext(c.Request.Context())
		if !ok || fromReq != GetIdentityFromContext(c) {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, fromReq.FirstName+":"+common.GetAccessTokenFromContext(c))
	})
	return r
}

func get(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(common.AuthorizationHeader, authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	alice := &shared.Identity{ID: uuid.New(), FirstName: "Alice", LastName: "Andersson", Email: "alice@example.com"}
	resolver := &mapResolver{tokens: map[string]*shared.Identity{"tok123": alice}}
	m := metrics.New()
	r := newAuthRouter(resolver, m)

	w := get(r, "/me", "tok123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice:tok123", w.Body.String())

	w = get(r, "/me", "Bearer tok123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice:tok123", w.Body.String())

	w = get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = get(r, "/me", "nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	scrape := httptest.NewRecorder()
	m.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `torslanda_locals_auth_failures_total{reason="missing_header"} 1`)
	assert.Contains(t, scrape.Body.String(), `torslanda_locals_auth_failures_total{reason="invalid_token"} 1`)
	assert.Equal(t, 3, resolver.calls, "no caching between requests")
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	resolver := &mapResolver{err: common.ErrStore.Wrap(errors.New("connection refused"))}
	r := newAuthRouter(resolver, nil)

	w := get(r, "/me", "tok123")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_ERROR")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestZapLogger_SetsRequestIDAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ZapLogger(zap.NewNop(), &config.Config{GinMode: gin.TestMode}))
	r.GET("/ping", func(c *gin.Context) {
		if common.LoggerFromContext(c) == nil {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, c.GetString(RequestIDContextKey))
	})

	w := get(r, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/api-error", func(c *gin.Context) { _ = c.Error(common.ErrNotFound) })
	r.GET("/plain-error", func(c *gin.Context) { _ = c.Error(errors.New("disk on fire")) })
	r.GET("/handled", func(c *gin.Context) { common.RespondWithError(c, common.ErrBadRequest) })

	w := get(r, "/api-error", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(r, "/plain-error", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")

	w = get(r, "/handled", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "BAD_REQUEST"))

	w = get(r, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	req := httptest.NewRequest(http.MethodPost, "/handled", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}
