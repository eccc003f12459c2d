package middleware

import (
	"context"
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"go.uber.org/zap"
)

const adminKey = "admin"

// Resolver maps a session token to its admin, or nil when the session is unusable.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.AdminUser, error)
}

// AdminFromCtx returns the admin loaded by Session.
func AdminFromCtx(c echo.Context) (*model.AdminUser, bool) {
	a, ok := c.Get(adminKey).(*model.AdminUser)
	return a, ok && a != nil
}

// Session loads the admin behind the session cookie, if any. It never
// rejects a request; RequireAdmin does that.
func Session(cookieName string, r Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(cookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			admin, err := r.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				logger.Log.Warn("session lookup failed", zap.Error(err))
				return next(c)
			}
			if admin == nil {
				ClearCookie(c, cookieName)
				return next(c)
			}
			c.Set(adminKey, admin)
			return next(c)
		}
	}
}

// RequireAdmin stops unauthenticated requests before the handler runs:
// browsers are redirected to loginPath, JSON callers get 401.
func RequireAdmin(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := AdminFromCtx(c); ok {
				return next(c)
			}
			if wantsJSON(c.Request()) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return c.Redirect(http.StatusSeeOther, loginPath)
		}
	}
}

func ClearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
