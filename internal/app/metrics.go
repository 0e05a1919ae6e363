package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts issuance outcomes. A nil *Metrics is valid and counts
// nothing, which keeps tests free of collector registration.
type Metrics struct {
	Issued      *prometheus.CounterVec
	Conflicts   prometheus.Counter
	Rejections  prometheus.Counter
	Reservation prometheus.GaugeFunc
}

func NewMetrics(reg prometheus.Registerer, registry *Registry) *Metrics {
	m := &Metrics{
		Issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livegate_tokens_issued_total",
			Help: "Credentials issued, by capability.",
		}, []string{"capability"}),
		Conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livegate_token_conflicts_total",
			Help: "Issuance requests rejected for a duplicate identity.",
		}),
		Rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "livegate_token_rejections_total",
			Help: "Issuance requests rejected for missing fields.",
		}),
		Reservation: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "livegate_identity_reservations",
			Help: "Identities with a live credential reservation.",
		}, func() float64 { return float64(registry.Active()) }),
	}
	reg.MustRegister(m.Issued, m.Conflicts, m.Rejections, m.Reservation)
	return m
}

func (m *Metrics) issued(publisher bool) {
	if m == nil {
		return
	}
	capability := "viewer"
	if publisher {
		capability = "publisher"
	}
	m.Issued.WithLabelValues(capability).Inc()
}

func (m *Metrics) conflicted() {
	if m == nil {
		return
	}
	m.Conflicts.Inc()
}

func (m *Metrics) rejected() {
	if m == nil {
		return
	}
	m.Rejections.Inc()
}
