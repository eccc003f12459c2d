package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	echo "github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	admins map[string]*model.AdminUser
	err    error
}

func (f fakeResolver) Resolve(_ context.Context, token string) (*model.AdminUser, error) {
	return f.admins[token], f.err
}

func guarded(r Resolver, hits *int) *echo.Echo {
	e := echo.New()
	g := e.Group("/admin", Session("sid", r), RequireAdmin("/admin/login"))
	g.GET("/dashboard", func(c echo.Context) error {
		*hits++
		a, _ := AdminFromCtx(c)
		return c.String(http.StatusOK, a.Email)
	})
	e.GET("/api/v1/admin/stats", func(c echo.Context) error {
		*hits++
		return c.NoContent(http.StatusOK)
	}, Session("sid", r), RequireAdmin("/admin/login"))
	return e
}

func TestRequireAdminRedirectsBrowsers(t *testing.T) {
	hits := 0
	e := guarded(fakeResolver{}, &hits)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.Zero(t, hits)
}

func TestRequireAdminJSONCallers(t *testing.T) {
	hits := 0
	e := guarded(fakeResolver{}, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, hits)
}

func TestSessionLoadsAdmin(t *testing.T) {
	hits := 0
	e := guarded(fakeResolver{admins: map[string]*model.AdminUser{
		"tok": {ID: 1, Email: "admin@mekitech.com", Status: "active"},
	}}, &hits)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@mekitech.com", rec.Body.String())
	assert.Equal(t, 1, hits)
}

func TestSessionUnknownTokenClearsCookie(t *testing.T) {
	hits := 0
	e := guarded(fakeResolver{}, &hits)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestSessionResolverErrorIsUnauthenticated(t *testing.T) {
	hits := 0
	e := guarded(fakeResolver{err: errors.New("redis down")}, &hits)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "tok"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, hits)
}

func limited(rdb *redis.Client, max int) *echo.Echo {
	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	e.POST("/contact", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimitMiddleware(RateLimitConfig{Redis: rdb, Max: max, Window: time.Minute, RetryAfterHint: true}))
	return e
}

func post(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	return postVia(e, ip, "")
}

func postVia(e *echo.Echo, ip, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = ip + ":5000"
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitPerIP(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limited(rdb, 2)

	assert.Equal(t, http.StatusNoContent, post(e, "10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, post(e, "10.0.0.1").Code)
	rec := post(e, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, post(e, "10.0.0.2").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limited(rdb, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, post(e, "10.0.0.1").Code)
	}
}

func TestRateLimitIgnoresForwardedForWithoutProxy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limited(rdb, 5)
	ip, err := ClientIP(false, nil)
	require.NoError(t, err)
	e.IPExtractor = ip

	accepted := 0
	for i := 0; i < 50; i++ {
		if postVia(e, "198.51.100.4", fmt.Sprintf("203.0.113.%d", i)).Code == http.StatusNoContent {
			accepted++
		}
	}
	assert.Equal(t, 5, accepted)
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := limited(rdb, 1)
	ip, err := ClientIP(true, []string{"10.0.0.0/8"})
	require.NoError(t, err)
	e.IPExtractor = ip

	// the proxy forwards two different visitors
	assert.Equal(t, http.StatusNoContent, postVia(e, "10.0.0.9", "203.0.113.1").Code)
	assert.Equal(t, http.StatusNoContent, postVia(e, "10.0.0.9", "203.0.113.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, postVia(e, "10.0.0.9", "203.0.113.1").Code)

	// an untrusted peer cannot pick its own address
	assert.Equal(t, http.StatusNoContent, postVia(e, "198.51.100.4", "203.0.113.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, postVia(e, "198.51.100.4", "203.0.113.4").Code)
}

func TestClientIPRejectsBadRange(t *testing.T) {
	_, err := ClientIP(true, []string{"10.0.0.0/99"})
	assert.Error(t, err)
}
