package subscription

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubscriptionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_subscriptions_active",
			Help: "Number of currently registered viewer subscriptions",
		},
	)

	ChangeEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_change_events_total",
			Help: "Total number of change events received from the store stream",
		},
	)

	SnapshotQueryErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_snapshot_query_errors_total",
			Help: "Total number of failed snapshot re-queries after a change event",
		},
	)

	StreamDisconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stream_disconnects_total",
			Help: "Total number of change stream disconnects",
		},
	)

	ResyncsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_resyncs_total",
			Help: "Total number of full snapshot repairs after reconnect",
		},
	)

	Degraded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_degraded",
			Help: "1 when the hub failed to repair the change stream repeatedly and views may be stale",
		},
	)
)
