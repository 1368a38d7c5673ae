// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mechanic_hub"

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeDropped  = "dropped"
)

var (
	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Service request status transitions by role and outcome.",
	}, []string{"role", "from", "to", "outcome"})

	assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Mechanic assignment attempts by outcome.",
	}, []string{"outcome"})

	notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Lifecycle notifications by outcome.",
	}, []string{"outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func ObserveTransition(role, from, to, outcome string) {
	transitions.WithLabelValues(role, from, to, outcome).Inc()
}

func ObserveAssignment(outcome string) {
	assignments.WithLabelValues(outcome).Inc()
}

func ObserveNotification(outcome string) {
	notifications.WithLabelValues(outcome).Inc()
}

// GinMiddleware records request latency labelled by the matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
