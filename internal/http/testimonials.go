package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"go.uber.org/zap"
)

type carouselEvent struct {
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	Testimonial model.Testimonial `json:"testimonial"`
}

// testimonialStreamHandler drives the carousel over server-sent events: one
// "testimonial" event per auto-advance, until the client disconnects. An empty
// or unreadable list answers 204 so the browser does not reconnect.
func testimonialStreamHandler(testimonials repository.TestimonialsRepository, interval time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		list, err := testimonials.ListActive(ctx)
		if err != nil {
			fetchFailed(repository.Testimonials, err)
			return c.NoContent(http.StatusNoContent)
		}
		if len(list) == 0 {
			return c.NoContent(http.StatusNoContent)
		}

		start, _ := strconv.Atoi(c.QueryParam("t"))
		car := page.NewCarousel(len(list), start)

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set("Cache-Control", "no-cache")
		res.Header().Set("X-Accel-Buffering", "no")
		res.WriteHeader(http.StatusOK)
		res.Flush()

		err = car.AutoAdvance(ctx, interval, func(i int) error {
			b, err := json.Marshal(carouselEvent{Index: i, Total: len(list), Testimonial: list[i]})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: testimonial\nid: %d\ndata: %s\n\n", i, b); err != nil {
				return err
			}
			res.Flush()
			return nil
		})
		if err != nil {
			logger.Log.Debug("testimonial stream closed", zap.Error(err))
		}
		return nil
	}
}
