package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
)

type portfolioView struct {
	Projects []model.Project
	Tags     []string
	Selected string
}

func loadPortfolio(c echo.Context, projects repository.ProjectsRepository) (portfolioView, error) {
	list, err := projects.ListPublished(c.Request().Context())
	if err != nil {
		return portfolioView{}, err
	}
	p := page.NewPortfolio(list)
	tag := c.QueryParam("tag")
	if tag == page.AllTags {
		tag = ""
	}
	return portfolioView{Projects: p.Filter(tag), Tags: p.Tags, Selected: tag}, nil
}

func portfolioHandler(projects repository.ProjectsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := loadPortfolio(c, projects)
		if err != nil {
			fetchFailed(repository.Projects, err)
		}
		return c.Render(http.StatusOK, "portfolio.html", &view{Title: "Portfolio", Section: "portfolio", Data: v})
	}
}

// projectHandler sends unknown slugs and failed lookups back to the list.
func projectHandler(projects repository.ProjectsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := projects.GetPublishedBySlug(c.Request().Context(), c.Param("slug"))
		if err != nil {
			fetchFailed(repository.Projects, err)
			return c.Redirect(http.StatusFound, "/portfolio")
		}
		if p == nil {
			return c.Redirect(http.StatusFound, "/portfolio")
		}
		return c.Render(http.StatusOK, "project.html", &view{Title: p.Title, Section: "portfolio", Data: p})
	}
}
