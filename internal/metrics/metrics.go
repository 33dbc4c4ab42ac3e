package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	ActiveRooms      prometheus.Gauge
	RoomsCreated     prometheus.Counter
	AnswersSubmitted prometheus.Counter
	AnswersAccepted  prometheus.Counter
}

// New builds and registers the service metrics. Pass
// prometheus.DefaultRegisterer in production; tests use their own registry.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms loaded in memory",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of room identifiers minted",
		}),
		AnswersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_submitted_total",
			Help:      "Total number of answer submissions received",
		}),
		AnswersAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_accepted_total",
			Help:      "Total number of answer submissions recorded",
		}),
	}

	reg.MustRegister(
		m.ActiveRooms,
		m.RoomsCreated,
		m.AnswersSubmitted,
		m.AnswersAccepted,
	)

	return m
}
