package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"go.uber.org/zap"
)

// fetchFailed records a page data fetch that fell back to an empty state.
func fetchFailed(c repository.Collection, err error) {
	metrics.FetchErrorsTotal.WithLabelValues(c.String()).Inc()
	logger.Log.Error("fetch failed", zap.String("collection", c.String()), zap.Error(err))
}

type carouselView struct {
	Current model.Testimonial
	Index   int
	Prev    int
	Next    int
	Len     int
}

func newCarouselView(list []model.Testimonial, start int) *carouselView {
	if len(list) == 0 {
		return nil
	}
	car := page.NewCarousel(len(list), start)
	i := car.Index()
	return &carouselView{
		Current: list[i],
		Index:   i,
		Prev:    car.PrevOf(i),
		Next:    car.NextOf(i),
		Len:     car.Len(),
	}
}

// featured prefers projects flagged featured, falling back to the newest.
func featured(list []model.Project, n int) []model.Project {
	out := make([]model.Project, 0, n)
	for _, p := range list {
		if p.Featured && len(out) < n {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	if len(list) > n {
		return list[:n]
	}
	return list
}

func homeHandler(
	projects repository.ProjectsRepository,
	services repository.ServicesRepository,
	testimonials repository.TestimonialsRepository,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var data struct {
			Services []model.Service
			Featured []model.Project
			Carousel *carouselView
		}

		if list, err := services.ListActive(ctx); err != nil {
			fetchFailed(repository.Services, err)
		} else {
			data.Services = list
		}

		if list, err := projects.ListPublished(ctx); err != nil {
			fetchFailed(repository.Projects, err)
		} else {
			data.Featured = featured(list, 3)
		}

		if list, err := testimonials.ListActive(ctx); err != nil {
			fetchFailed(repository.Testimonials, err)
		} else {
			start, _ := strconv.Atoi(c.QueryParam("t"))
			data.Carousel = newCarouselView(list, start)
		}

		return c.Render(http.StatusOK, "home.html", &view{Section: "home", Data: data})
	}
}

func aboutHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", &view{Title: "About", Section: "about"})
}
