// internal/notification/metrics.go
package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	createdTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "libralend",
		Subsystem: "notifications",
		Name:      "created_total",
		Help:      "Notifications successfully persisted, by type.",
	}, []string{"type"})

	failedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "libralend",
		Subsystem: "notifications",
		Name:      "failed_total",
		Help:      "Notification writes that failed.",
	})
)
