package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
)

// loadServices falls back to an empty list when services cannot be read. A
// tier failure still shows the services, without pricing.
func loadServices(c echo.Context, services repository.ServicesRepository) *page.Services {
	ctx := c.Request().Context()
	list, err := services.ListActive(ctx)
	if err != nil {
		fetchFailed(repository.Services, err)
		return page.NewServices(nil, nil)
	}
	tiers, err := services.ListTiers(ctx)
	if err != nil {
		fetchFailed(repository.PricingTiers, err)
	}
	return page.NewServices(list, tiers)
}

func servicesHandler(services repository.ServicesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		v := loadServices(c, services)
		if id := c.QueryParam("expand"); id != "" {
			v.Toggle(id)
		}
		return c.Render(http.StatusOK, "services.html", &view{Title: "Services", Section: "services", Data: v})
	}
}
