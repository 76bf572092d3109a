package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for notification dispatch.
type Metrics struct {
	ChannelSends *prometheus.CounterVec
}

// New creates and registers all notification metrics.
func New() *Metrics {
	return &Metrics{
		ChannelSends: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_notification_sends_total",
			Help: "Channel send attempts partitioned by channel and result",
		}, []string{"channel", "result"}),
	}
}

// ObserveSend records one channel send attempt.
func (m *Metrics) ObserveSend(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "fail"
	}
	m.ChannelSends.WithLabelValues(channel, result).Inc()
}
