// Package metrics provides Prometheus metrics for Palisade security and
// cache operations.
//
// Collectors are registered on the default Prometheus registry at
// package initialization. Use Handler to expose them over HTTP:
//
//	http.Handle("/metrics", metrics.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// authenticationAttempts counts authentication attempts by realm
	// and outcome ("success" or "failure").
	authenticationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palisade",
			Subsystem: "security",
			Name:      "authentication_attempts_total",
			Help:      "Authentication attempts by realm and outcome.",
		},
		[]string{"realm", "outcome"},
	)

	// activationState reports whether integrated security is active
	// (1) or inactive (0).
	activationState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "palisade",
			Subsystem: "security",
			Name:      "activation_state",
			Help:      "Whether integrated security is active (1) or inactive (0).",
		},
	)

	// activeRealms reports the number of realms in the active security
	// manager.
	activeRealms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "palisade",
			Subsystem: "security",
			Name:      "active_realms",
			Help:      "Number of realms in the active security manager.",
		},
	)

	// regionOperations counts cache region operations by region and
	// operation ("get", "put", "remove").
	regionOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "palisade",
			Subsystem: "cache",
			Name:      "region_operations_total",
			Help:      "Cache region operations by region and operation.",
		},
		[]string{"region", "operation"},
	)
)

// RecordAuthentication records one authentication attempt for a realm.
// Outcome should be "success" or "failure".
func RecordAuthentication(realm, outcome string) {
	authenticationAttempts.WithLabelValues(realm, outcome).Inc()
}

// SetActivationState records the result of security activation.
func SetActivationState(active bool, realms int) {
	if active {
		activationState.Set(1)
	} else {
		activationState.Set(0)
	}
	activeRealms.Set(float64(realms))
}

// RecordRegionOperation records one cache region operation.
func RecordRegionOperation(region, operation string) {
	regionOperations.WithLabelValues(region, operation).Inc()
}

// Handler returns an HTTP handler serving the default Prometheus
// registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
