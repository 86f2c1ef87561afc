package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConciergeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_requests_total",
			Help: "Concierge questions by outcome (answered, empty, unavailable)",
		},
		[]string{"outcome"},
	)

	ConciergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "concierge_request_duration_seconds",
			Help:    "Time spent waiting on the generative service",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	PanelSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_submissions_total",
			Help: "Panel submit calls by result (dispatched, blank, busy, closed)",
		},
		[]string{"result"},
	)

	PanelSettlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_settlements_total",
			Help: "Panel settlements by result (applied, stale)",
		},
		[]string{"result"},
	)

	PanelsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "panels_active",
			Help: "Visitor panels currently held in memory",
		},
	)

	PhotoHandles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_handles_live",
			Help: "Uploaded photo handles not yet released",
		},
	)

	PhotoBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "photo_bytes_live",
			Help: "Bytes held by live photo handles",
		},
	)

	ContactRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_requests_total",
			Help: "Contact requests by result (stored, invalid, failed)",
		},
		[]string{"result"},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "panel_websocket_connections",
			Help: "Open panel websocket connections",
		},
	)
)
