package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total status server HTTP requests.",
		},
		[]string{"bot", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mirbot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Status server HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"bot", "method", "path", "status"},
	)
	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "conn",
			Name:      "frames_total",
			Help:      "Frames moved over the game connection.",
		},
		[]string{"direction", "kind"},
	)
	frameBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "conn",
			Name:      "frame_bytes_total",
			Help:      "Wire bytes moved over the game connection, headers included.",
		},
		[]string{"direction"},
	)
	dropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "conn",
			Name:      "dropped_frames_total",
			Help:      "Inbound frames dropped before dispatch.",
		},
		[]string{"reason"},
	)
	handlerPanics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "conn",
			Name:      "handler_panics_total",
			Help:      "Packet handlers that panicked during dispatch.",
		},
		[]string{"kind"},
	)
	connected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mirbot",
			Subsystem: "conn",
			Name:      "connected",
			Help:      "1 while a game connection is live.",
		},
	)
	waits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "correlator",
			Name:      "waits_total",
			Help:      "Correlated waits by outcome.",
		},
		[]string{"kind", "outcome"},
	)
	waitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mirbot",
			Subsystem: "correlator",
			Name:      "wait_duration_seconds",
			Help:      "Time spent in correlated waits.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
	actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mirbot",
			Subsystem: "bot",
			Name:      "actions_total",
			Help:      "Bot verbs issued.",
		},
		[]string{"verb", "success"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			frames, frameBytes, dropped, handlerPanics, connected,
			waits, waitDuration,
			actions,
		)
	})
}

func RecordHTTPRequest(bot, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(bot, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(bot, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordFrame counts one frame; direction is "in" or "out".
func RecordFrame(direction, kind string, wireBytes int) {
	RegisterMetrics()
	frames.WithLabelValues(direction, kind).Inc()
	frameBytes.WithLabelValues(direction).Add(float64(wireBytes))
}

// RecordDropped counts an inbound frame that never reached handlers.
func RecordDropped(reason string) {
	RegisterMetrics()
	dropped.WithLabelValues(reason).Inc()
}

func RecordHandlerPanic(kind string) {
	RegisterMetrics()
	handlerPanics.WithLabelValues(kind).Inc()
}

func SetConnected(up bool) {
	RegisterMetrics()
	if up {
		connected.Set(1)
		return
	}
	connected.Set(0)
}

func RecordWait(kind, outcome string, duration time.Duration) {
	RegisterMetrics()
	waits.WithLabelValues(kind, outcome).Inc()
	waitDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordAction(verb string, success bool) {
	RegisterMetrics()
	actions.WithLabelValues(verb, strconv.FormatBool(success)).Inc()
}
