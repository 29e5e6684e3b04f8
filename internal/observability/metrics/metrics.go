package metrics

import "github.com/prometheus/client_golang/prometheus"

// SalonMetrics exposes counters/histograms for the booking funnel.
type SalonMetrics struct {
	availabilityQueries *prometheus.CounterVec
	availabilityLatency prometheus.Histogram
	bookingsTotal       *prometheus.CounterVec
	tryOnTotal          *prometheus.CounterVec
	tryOnLatency        prometheus.Histogram
}

func NewSalonMetrics(reg prometheus.Registerer) *SalonMetrics {
	m := &SalonMetrics{
		availabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "queries_total",
			Help:      "Total availability slot queries",
		}, []string{"status"}),
		availabilityLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "availability",
			Name:      "query_latency_seconds",
			Help:      "Latency of availability slot resolution",
			Buckets:   prometheus.DefBuckets,
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total booking requests created",
		}, []string{"status"}),
		tryOnTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "tryon",
			Name:      "generations_total",
			Help:      "Total hair try-on generation attempts",
		}, []string{"status"}),
		tryOnLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "tryon",
			Name:      "generation_latency_seconds",
			Help:      "Latency of Gemini try-on generations",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityQueries, m.availabilityLatency,
		m.bookingsTotal, m.tryOnTotal, m.tryOnLatency)
	return m
}

func (m *SalonMetrics) ObserveAvailabilityQuery(status string, seconds float64) {
	if m == nil {
		return
	}
	m.availabilityQueries.WithLabelValues(status).Inc()
	m.availabilityLatency.Observe(seconds)
}

func (m *SalonMetrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *SalonMetrics) ObserveTryOn(status string, seconds float64) {
	if m == nil {
		return
	}
	m.tryOnTotal.WithLabelValues(status).Inc()
	m.tryOnLatency.Observe(seconds)
}
