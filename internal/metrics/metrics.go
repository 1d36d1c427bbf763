package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Broker metrics
	BrokerMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigpulse_broker_messages_total",
			Help: "Messages appended to the broker log",
		},
		[]string{"sender", "category"},
	)

	ResponderFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigpulse_responder_fallbacks_total",
			Help: "Replies served by the fallback responder after the primary failed",
		},
	)

	ReplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gigpulse_broker_reply_duration_seconds",
			Help:    "Time from user message to broker reply",
			Buckets: []float64{.1, .5, 1, 1.5, 2, 3, 5, 10},
		},
	)

	// Simulator metrics
	SimulatorTicks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigpulse_simulator_ticks_total",
			Help: "Simulator timer firings",
		},
		[]string{"timer"}, // "countdown", "squad" or "revenue"
	)

	SimulatorTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigpulse_simulator_transactions_total",
			Help: "Synthetic ledger transactions",
		},
		[]string{"kind"},
	)

	AssetPurchases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gigpulse_asset_purchases_total",
			Help: "Assets added to the owned set",
		},
	)

	// Support metrics
	SupportRoutes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigpulse_support_routes_total",
			Help: "Support questions routed by intent",
		},
		[]string{"intent"},
	)

	// Realtime metrics
	RealtimeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gigpulse_realtime_events_total",
			Help: "Realtime channel events by direction",
		},
		[]string{"direction"}, // "in" or "out"
	)
)
