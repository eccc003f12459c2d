package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/meki101/mekitech.co.ke/internal/config"
	"github.com/meki101/mekitech.co.ke/internal/http/middleware"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/notify"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/service/inquiry"
	"github.com/meki101/mekitech.co.ke/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps is everything the router needs. NewServer wires the production
// implementations; tests pass fakes.
type Deps struct {
	Site      config.SiteConfig
	HTTP      config.HTTPConfig
	Session   config.SessionConfig
	RateLimit config.RateLimitConfig
	LogLevel  string

	Projects     repository.ProjectsRepository
	Services     repository.ServicesRepository
	Testimonials repository.TestimonialsRepository
	Inquiries    repository.InquiriesRepository
	Payments     repository.PaymentsRepository
	Counter      page.Counter
	Submitter    page.Submitter
	Auth         Auth
	Emails       *notify.Builder
	Redis        *redis.Client

	// Ping reports database health for /healthz. Nil skips the check.
	Ping             func(ctx context.Context) error
	CarouselInterval time.Duration
}

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, mysqlDB *sqlx.DB, rds *redis.Client) (*Server, error) {
	// repos (MySQL)
	store := repository.NewStore(mysqlDB)
	projectsRepo := repository.NewProjectsRepository(store)
	servicesRepo := repository.NewServicesRepository(store)
	testimonialsRepo := repository.NewTestimonialsRepository(store)
	paymentsRepo := repository.NewPaymentsRepository(store)
	inquiriesRepo := repository.NewInquiriesRepository(mysqlDB, store)
	outboxRepo := repository.NewOutboxRepository(mysqlDB)
	adminsRepo := repository.NewAdminsRepository(mysqlDB)

	// services
	inquirySvc := inquiry.New(mysqlDB, inquiriesRepo, outboxRepo)
	auth := session.NewAuthenticator(adminsRepo, session.NewStore(rds, cfg.Session.KeyPrefix, cfg.Session.TTL))

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e, err := newRouter(Deps{
		Site:         cfg.Site,
		HTTP:         cfg.HTTP,
		Session:      cfg.Session,
		RateLimit:    cfg.RateLimit,
		LogLevel:     cfg.Log.Level,
		Projects:     projectsRepo,
		Services:     servicesRepo,
		Testimonials: testimonialsRepo,
		Inquiries:    inquiriesRepo,
		Payments:     paymentsRepo,
		Counter:      store,
		Submitter:    inquirySvc,
		Auth:         auth,
		Emails:       notify.NewBuilder(cfg.Site),
		Redis:        rds,
		Ping:         mysqlDB.PingContext,
	})
	if err != nil {
		return nil, err
	}
	return &Server{e: e}, nil
}

func newRouter(d Deps) (*echo.Echo, error) {
	renderer, err := NewRenderer(d.Site)
	if err != nil {
		return nil, err
	}
	clientIP, err := middleware.ClientIP(d.HTTP.BehindProxy, d.HTTP.TrustedProxies)
	if err != nil {
		return nil, err
	}
	if d.Session.CookieName == "" {
		d.Session.CookieName = "meki_session"
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.IPExtractor = clientIP
	e.Logger.SetLevel(echoLevel(d.LogLevel))
	e.Use(echoMid.Recover(), echoMid.Logger())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error {
		if d.Ping != nil {
			if err := d.Ping(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "db unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	})

	// middlewares
	sessionMW := middleware.Session(d.Session.CookieName, d.Auth)
	adminMW := middleware.RequireAdmin("/admin/login")
	limit := func(onLimit echo.HandlerFunc) echo.MiddlewareFunc {
		return middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			Redis:          d.Redis,
			Max:            d.RateLimit.Max,
			KeyPrefix:      "rl:ip:",
			Window:         d.RateLimit.Window,
			RetryAfterHint: true,
			OnLimit:        onLimit,
		})
	}

	contact := page.NewContact(d.Submitter)

	// public pages
	site := e.Group("", sessionMW)
	site.GET("/", homeHandler(d.Projects, d.Services, d.Testimonials))
	site.GET("/about", aboutHandler)
	site.GET("/portfolio", portfolioHandler(d.Projects))
	site.GET("/portfolio/:slug", projectHandler(d.Projects))
	site.GET("/services", servicesHandler(d.Services))
	site.GET("/contact", contactFormHandler)
	site.POST("/contact", contactSubmitHandler(contact), limit(contactRateLimited))
	e.GET("/testimonials/stream", testimonialStreamHandler(d.Testimonials, d.CarouselInterval))

	// admin
	site.GET("/admin/login", loginFormHandler)
	site.POST("/admin/login", loginHandler(d.Auth, d.Session))
	site.POST("/admin/logout", logoutHandler(d.Auth, d.Session))
	admin := site.Group("/admin", adminMW)
	admin.GET("", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, "/admin/dashboard") })
	admin.GET("/dashboard", dashboardHandler(d.Counter))
	admin.GET("/inquiries", adminListHandler("admin_inquiries.html", "Inquiries", repository.Inquiries, d.Inquiries.List))
	admin.GET("/projects", adminListHandler("admin_projects.html", "Projects", repository.Projects, d.Projects.ListAll))
	admin.GET("/payments", adminListHandler("admin_payments.html", "Payments", repository.Payments, d.Payments.List))
	admin.GET("/testimonials", adminListHandler("admin_testimonials.html", "Testimonials", repository.Testimonials, d.Testimonials.ListAll))

	// JSON API
	v1 := e.Group("/api/v1")
	v1.GET("/projects", listProjectsAPI(d.Projects))
	v1.GET("/projects/:slug", getProjectAPI(d.Projects))
	v1.GET("/services", listServicesAPI(d.Services))
	v1.GET("/testimonials", listTestimonialsAPI(d.Testimonials))
	v1.POST("/inquiries", createInquiryAPI(contact), limit(nil))
	v1.GET("/admin/stats", statsAPI(d.Counter), sessionMW, adminMW)

	// notification function
	e.Any("/functions/v1/send-inquiry-confirmation", sendInquiryConfirmationHandler(d.Emails), functionCORS)

	return e, nil
}

func echoLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

func (s *Server) Start(addr string) error {
	logger.Log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
