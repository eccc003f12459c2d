package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/http/middleware"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/session"
	"go.uber.org/zap"
)

// Auth is the admin login surface backed by the session store.
type Auth interface {
	middleware.Resolver
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type loginView struct {
	Email string
	Error string
}

func loginFormHandler(c echo.Context) error {
	if _, ok := middleware.AdminFromCtx(c); ok {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "admin_login.html", &view{Title: "Sign in", Data: loginView{}})
}

func loginHandler(auth Auth, sc config.SessionConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := strings.TrimSpace(c.FormValue("email"))
		token, err := auth.Login(c.Request().Context(), email, c.FormValue("password"))
		if errors.Is(err, session.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "admin_login.html", &view{
				Title: "Sign in",
				Data:  loginView{Email: email, Error: "Invalid email or password."},
			})
		}
		if err != nil {
			logger.Log.Error("admin login failed", zap.Error(err))
			return c.Render(http.StatusInternalServerError, "admin_login.html", &view{
				Title: "Sign in",
				Data:  loginView{Email: email, Error: "Sign in is unavailable right now. Please try again later."},
			})
		}

		c.SetCookie(&http.Cookie{
			Name:     sc.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(sc.TTL.Seconds()),
			HttpOnly: true,
			Secure:   sc.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Log.Info("admin signed in", zap.String("email", email))
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}
}

func logoutHandler(auth Auth, sc config.SessionConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		if ck, err := c.Cookie(sc.CookieName); err == nil && ck.Value != "" {
			if err := auth.Logout(c.Request().Context(), ck.Value); err != nil {
				logger.Log.Warn("admin logout failed", zap.Error(err))
			}
		}
		middleware.ClearCookie(c, sc.CookieName)
		return c.Redirect(http.StatusSeeOther, "/admin/login")
	}
}

// loadStats shows zeros when any count fails.
func loadStats(c echo.Context, counter page.Counter) page.Stats {
	stats, err := page.LoadStats(c.Request().Context(), counter)
	if err != nil {
		logger.Log.Error("dashboard stats failed", zap.Error(err))
		return page.Stats{}
	}
	return stats
}

func dashboardHandler(counter page.Counter) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, "admin_dashboard.html", &view{Title: "Dashboard", Data: loadStats(c, counter)})
	}
}

// adminListHandler renders one admin table; a failed load renders it empty.
func adminListHandler[T any](
	tmpl, title string,
	coll repository.Collection,
	load func(context.Context) ([]T, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := load(c.Request().Context())
		if err != nil {
			fetchFailed(coll, err)
			list = nil
		}
		return c.Render(http.StatusOK, tmpl, &view{Title: title, Data: list})
	}
}
