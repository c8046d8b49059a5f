package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// StoreConflicts counts optimistic-concurrency conflicts by document key.
	StoreConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_store_version_conflicts_total",
		Help: "Total number of record store version conflicts by document",
	}, []string{"document"})

	// NotificationsEmitted counts notifications written by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_notifications_emitted_total",
		Help: "Total number of notifications written by type",
	}, []string{"type"})

	// ActiveWebSockets is the gauge of open notification stream connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chronicle_websocket_connections",
		Help: "Number of active notification WebSocket connections",
	})

	// WebSocketDrops counts messages dropped on slow or closed clients.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chronicle_websocket_dropped_messages_total",
		Help: "Total number of websocket messages dropped by reason",
	}, []string{"reason"})
)
