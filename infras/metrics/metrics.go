package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shareit"

// Recorder counts booking lifecycle outcomes.
type Recorder interface {
	BookingCreated(status string)
	OwnerDecision(decision string)
	RequestRejected(kind string)
	Handler() http.Handler
}

type Prometheus struct {
	registry *prometheus.Registry
	once     sync.Once

	bookingCreated  *prometheus.CounterVec
	ownerDecision   *prometheus.CounterVec
	requestRejected *prometheus.CounterVec
}

func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
		bookingCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_created_total",
				Help:      "Count of bookings created by status.",
			},
			[]string{"status"},
		),
		ownerDecision: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "owner_decision_total",
				Help:      "Count of owner decisions over bookings.",
			},
			[]string{"decision"},
		),
		requestRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_request_rejected_total",
				Help:      "Count of booking operations refused, by failure kind.",
			},
			[]string{"kind"},
		),
	}
}

// Register registers collectors (idempotent).
func (p *Prometheus) Register() *Prometheus {
	p.once.Do(func() {
		p.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			p.bookingCreated,
			p.ownerDecision,
			p.requestRejected,
		)
	})

	return p
}

func (p *Prometheus) BookingCreated(status string) {
	p.bookingCreated.WithLabelValues(status).Inc()
}

func (p *Prometheus) OwnerDecision(decision string) {
	p.ownerDecision.WithLabelValues(decision).Inc()
}

func (p *Prometheus) RequestRejected(kind string) {
	p.requestRejected.WithLabelValues(kind).Inc()
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// NewRecorder is the wire provider.
func NewRecorder() Recorder {
	return New().Register()
}
