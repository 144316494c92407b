package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EntriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_entries_created_total",
			Help: "Daily entries recorded since process start",
		},
	)

	SettlementsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settlements_generated_total",
			Help: "Draft settlements generated since process start",
		},
	)

	SettlementsPaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settlements_paid_total",
			Help: "Settlements marked paid since process start",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_notifications_total",
			Help: "WhatsApp notification attempts by outcome",
		},
		[]string{"status"},
	)
)
