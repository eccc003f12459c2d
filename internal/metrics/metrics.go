package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InquiriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_inquiries_total",
			Help: "Contact inquiries by stage",
		},
		[]string{"stage"}, // submitted|invalid|failed|rate_limited
	)

	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_fetch_errors_total",
			Help: "Failed page data fetches by collection",
		},
		[]string{"collection"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_notifications_total",
			Help: "Inquiry notifications by outcome",
		},
		[]string{"status"}, // sent|failed|published
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		InquiriesTotal,
		FetchErrorsTotal,
		NotificationsTotal,
	)
}
