package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AuthRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts.",
		},
		[]string{"result"},
	)

	AuthLoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)

	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of identity tokens issued.",
		},
		[]string{"result"},
	)

	AuthenticationAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_gate_attempts_total",
			Help: "Token checks at the HTTP gate and the realtime handshake.",
		},
		[]string{"transport", "result"},
	)

	ItemMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_mutations_total",
			Help: "Item create/update/delete attempts.",
		},
		[]string{"op", "result"},
	)

	HubConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connections",
			Help: "Currently admitted realtime connections.",
		},
	)

	HubHandshakesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_handshakes_total",
			Help: "Realtime handshakes by outcome.",
		},
		[]string{"result"},
	)

	HubMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_messages_total",
			Help: "Inbound chat payloads by outcome.",
		},
		[]string{"result"},
	)

	HubDeliveriesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_deliveries_dropped_total",
			Help: "Broadcast deliveries skipped because a member queue was full.",
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		AuthRegistrationsTotal,
		AuthLoginsTotal,
		TokensIssuedTotal,
		AuthenticationAttemptsTotal,
		ItemMutationsTotal,
		HubConnections,
		HubHandshakesTotal,
		HubMessagesTotal,
		HubDeliveriesDroppedTotal,
	}
}

// MustRegister registers every collector on reg with a constant service label.
func MustRegister(reg prometheus.Registerer, serviceName string) {
	prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg).MustRegister(collectors()...)
}
