package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/meki101/mekitech.co.ke/internal/logger"
	"github.com/meki101/mekitech.co.ke/internal/metrics"
	"github.com/meki101/mekitech.co.ke/internal/page"
	"go.uber.org/zap"
)

type contactView struct {
	State     page.ContactState
	Confirmed bool
	Services  []page.Option
	Budgets   []page.Option
	Timelines []page.Option
}

func newContactView(st page.ContactState, now time.Time) contactView {
	return contactView{
		State:     st,
		Confirmed: st.Submitted(now),
		Services:  page.ServiceOptions,
		Budgets:   page.BudgetOptions,
		Timelines: page.TimelineOptions,
	}
}

func renderContact(c echo.Context, status int, st page.ContactState) error {
	v := &view{Title: "Contact", Section: "contact", Data: newContactView(st, time.Now())}
	if v.Data.(contactView).Confirmed {
		// the confirmation gives way to an empty form when the window closes
		v.Refresh = int(page.ConfirmationWindow / time.Second)
	}
	return c.Render(status, "contact.html", v)
}

func contactFormHandler(c echo.Context) error {
	return renderContact(c, http.StatusOK, page.ContactState{})
}

func contactSubmitHandler(contact *page.Contact) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form page.ContactForm
		if err := c.Bind(&form); err != nil {
			return renderContact(c, http.StatusBadRequest, page.ContactState{Error: "Could not read the form. Please try again."})
		}

		st := contact.Submit(c.Request().Context(), form)
		switch {
		case !st.Violations.Empty():
			metrics.InquiriesTotal.WithLabelValues("invalid").Inc()
			return renderContact(c, http.StatusUnprocessableEntity, st)
		case st.Error != "":
			metrics.InquiriesTotal.WithLabelValues("failed").Inc()
			logger.Log.Error("inquiry submit failed", zap.String("error", st.Error))
			return renderContact(c, http.StatusInternalServerError, st)
		}

		metrics.InquiriesTotal.WithLabelValues("submitted").Inc()
		logger.Log.Info("inquiry submitted", zap.String("inquiry_id", st.InquiryID))
		return renderContact(c, http.StatusOK, st)
	}
}

// contactRateLimited re-renders the form with the visitor's input kept.
func contactRateLimited(c echo.Context) error {
	metrics.InquiriesTotal.WithLabelValues("rate_limited").Inc()
	var form page.ContactForm
	_ = c.Bind(&form)
	return renderContact(c, http.StatusTooManyRequests, page.ContactState{
		Form:  form,
		Error: "Too many submissions from your network. Please wait a minute and try again.",
	})
}
