// Package metrics defines and registers all custom Prometheus metrics for the
// sweet shop inventory API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// ── Inventory metrics ─────────────────────────────────────────────────────────

// SweetsCreatedTotal counts new catalog entries.
// Label:
//   - category: the catalog category of the created sweet
var SweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_created_total",
		Help:      "Total number of catalog entries created, by category.",
	},
	[]string{"category"},
)

// PurchasesTotal counts successful purchases.
// Label:
//   - category: the catalog category of the purchased sweet
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of successful purchases, by category.",
	},
	[]string{"category"},
)

// PurchaseRejectionsTotal counts purchases rejected before mutating stock.
// Label:
//   - reason: "insufficient_stock", "invalid_amount", or "not_found"
var PurchaseRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchase_rejections_total",
		Help:      "Total number of rejected purchase attempts, by reason.",
	},
	[]string{"reason"},
)

// RestocksTotal counts successful restocks.
var RestocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "restocks_total",
		Help:      "Total number of successful restock operations.",
	},
)

// UnitsSoldTotal tracks how many units left the shelf through purchases.
var UnitsSoldTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_sold_total",
		Help:      "Total number of individual units sold.",
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of sweet cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
