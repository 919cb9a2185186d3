package toypad

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for the engine's command/response
// traffic and tag activity. All methods are nil-safe: calls on a nil
// *Metrics are no-ops, so an Engine built without a registerer still works.
type Metrics struct {
	CommandsSent     *prometheus.CounterVec
	ResponsesMatched prometheus.Counter
	ResponseLatency  prometheus.Histogram
	Timeouts         prometheus.Counter
	TagEventsTotal   *prometheus.CounterVec
	Connected        prometheus.Gauge
}

// NewMetrics creates and registers engine metrics with the given
// Prometheus registerer. If reg is nil, metrics are created but not
// registered (useful for tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CommandsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toypad",
			Name:      "commands_sent_total",
			Help:      "Total HID output reports sent, by opcode",
		}, []string{"opcode"}),
		ResponsesMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "toypad",
			Name:      "responses_matched_total",
			Help:      "Total 0x55 responses matched to a pending request",
		}),
		ResponseLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "toypad",
			Name:      "response_latency_seconds",
			Help:      "Time from request send to matching response",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "toypad",
			Name:      "request_timeouts_total",
			Help:      "Total outstanding requests that exceeded their deadline",
		}),
		TagEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toypad",
			Name:      "tag_events_total",
			Help:      "Total deduplicated tag events, by zone and action",
		}, []string{"zone", "action"}),
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "toypad",
			Name:      "connected",
			Help:      "1 if a session is currently attached and running, else 0",
		}),
	}

	if reg != nil {
		collectors := []prometheus.Collector{
			m.CommandsSent, m.ResponsesMatched, m.ResponseLatency,
			m.Timeouts, m.TagEventsTotal, m.Connected,
		}
		for _, c := range collectors {
			if err := reg.Register(c); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					panic(err)
				}
			}
		}
	}

	return m
}

func (m *Metrics) ObserveCommandSent(opcode byte) {
	if m == nil {
		return
	}
	m.CommandsSent.WithLabelValues(opcodeLabel(opcode)).Inc()
}

func (m *Metrics) ObserveResponseMatched(latency time.Duration) {
	if m == nil {
		return
	}
	m.ResponsesMatched.Inc()
	if latency > 0 {
		m.ResponseLatency.Observe(latency.Seconds())
	}
}

func (m *Metrics) ObserveTimeout() {
	if m == nil {
		return
	}
	m.Timeouts.Inc()
}

func (m *Metrics) ObserveTagEvent(zone byte, inserted bool) {
	if m == nil {
		return
	}
	action := "removed"
	if inserted {
		action = "added"
	}
	m.TagEventsTotal.WithLabelValues(Zone(zone).String(), action).Inc()
}

func (m *Metrics) ObserveConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.Connected.Set(1)
	} else {
		m.Connected.Set(0)
	}
}

func opcodeLabel(opcode byte) string {
	switch opcode {
	case 0xB0:
		return "init"
	case 0xD2:
		return "read_pages"
	case 0xC0:
		return "solid"
	case 0xC2:
		return "fade"
	case 0xC3:
		return "flash"
	case 0xC6:
		return "fade_all"
	case 0xC7:
		return "flash_all"
	default:
		return "unknown"
	}
}
