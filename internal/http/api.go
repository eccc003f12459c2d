package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"go.uber.org/zap"
)

func listProjectsAPI(projects repository.ProjectsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := loadPortfolio(c, projects)
		if err != nil {
			fetchFailed(repository.Projects, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if v.Projects == nil {
			v.Projects = []model.Project{}
		}
		return c.JSON(http.StatusOK, map[string]any{"projects": v.Projects, "tags": v.Tags})
	}
}

func getProjectAPI(projects repository.ProjectsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := projects.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			fetchFailed(repository.Projects, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if p == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusOK, p)
	}
}

type serviceJSON struct {
	model.Service
	PricingTiers []model.PricingTier `json:"pricing_tiers"`
}

func listServicesAPI(services repository.ServicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		v := loadServices(c, services)
		out := make([]serviceJSON, 0, len(v.Cards))
		for _, card := range v.Cards {
			tiers := card.Tiers
			if tiers == nil {
				tiers = []model.PricingTier{}
			}
			out = append(out, serviceJSON{Service: card.Service, PricingTiers: tiers})
		}
		return c.JSON(http.StatusOK, map[string]any{"services": out})
	}
}

func listTestimonialsAPI(testimonials repository.TestimonialsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := testimonials.ListActive(c.Request().Context())
		if err != nil {
			fetchFailed(repository.Testimonials, err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if list == nil {
			list = []model.Testimonial{}
		}
		return c.JSON(http.StatusOK, map[string]any{"testimonials": list})
	}
}

func createInquiryAPI(contact *page.Contact) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form page.ContactForm
		if err := c.Bind(&form); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		st := contact.Submit(c.Request().Context(), form)
		switch {
		case !st.Violations.Empty():
			metrics.InquiriesTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"fields": st.Violations,
			})
		case st.Error != "":
			metrics.InquiriesTotal.WithLabelValues("failed").Inc()
			logger.Log.Error("inquiry submit failed", zap.String("error", st.Error))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": st.Error})
		}

		metrics.InquiriesTotal.WithLabelValues("submitted").Inc()
		return c.JSON(http.StatusCreated, map[string]any{
			"id":           st.InquiryID,
			"submitted_at": st.SubmittedAt,
			"confirm_for":  page.ConfirmationWindow.Seconds(),
		})
	}
}

func statsAPI(counter page.Counter) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, loadStats(c, counter))
	}
}
