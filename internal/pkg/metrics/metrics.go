// Package metrics defines and registers all custom Prometheus metrics
// for the cargo tracking API. It is the single source of truth for
// metric names, labels, and help strings; everything registers with the
// default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cargotrack"

// ShipmentsCreatedTotal counts newly created shipments.
// Label:
//   - geometry: "present" when the routing provider supplied a path,
//     "absent" otherwise
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by geometry availability.",
	},
	[]string{"geometry"},
)

// LocationUpdatesTotal counts location updates that were applied.
// Label:
//   - status: the shipment status after the update (e.g. "in_transit")
var LocationUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "location_updates_total",
		Help:      "Total number of location updates applied, by resulting status.",
	},
	[]string{"status"},
)

// UpdatesDedupTotal counts deduplication decisions on location updates.
// Label:
//   - result: "hit" (duplicate ping, skipped) or "miss" (applied)
var UpdatesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_dedup_total",
		Help:      "Total number of location update dedup checks, by result (hit/miss).",
	},
	[]string{"result"},
)

// GeometryRequestsTotal counts calls to the external routing provider.
// Label:
//   - result: "ok", "empty" (no usable geometry), or "error"
var GeometryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geometry_requests_total",
		Help:      "Total number of route geometry fetches, by result.",
	},
	[]string{"result"},
)

// ShipmentsDelayedTotal counts shipments flagged delayed by the sweeper.
var ShipmentsDelayedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_delayed_total",
		Help:      "Total number of shipments flagged delayed for missing their ETA.",
	},
)

// LocationUpdateDuration measures a single update from lookup to persistence.
// Label:
//   - status: the resulting shipment status, or "error" on failure
var LocationUpdateDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "location_update_duration_seconds",
		Help:      "Duration of location update processing from lookup to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
