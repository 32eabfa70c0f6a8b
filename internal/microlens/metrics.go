package microlens

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "microlens"

// Metrics collects per-run search counters in a private registry that is
// written out as a node-exporter textfile at the end of a run.
type Metrics struct {
	registry *prometheus.Registry

	// LevelArea is terminated area by level and kind (all, hit).
	LevelArea *prometheus.CounterVec
	// LevelCalls is classification cost by level.
	LevelCalls *prometheus.CounterVec
	// Terminals counts terminal regions by reason and classification.
	Terminals *prometheus.CounterVec
	// FrameSeconds is the search time per frame.
	FrameSeconds prometheus.Histogram
	// PeakMagnification is the largest magnification seen so far.
	PeakMagnification prometheus.Gauge

	mu   sync.Mutex
	peak Real
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LevelArea: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "level_area_total",
			Help:      "Image-plane area of terminated regions, by recursion level.",
		}, []string{"level", "kind"}),
		LevelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "level_calls_total",
			Help:      "Classification cost units, by recursion level.",
		}, []string{"level"}),
		Terminals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "terminals_total",
			Help:      "Terminal regions, by reason and classification.",
		}, []string{"reason", "classification"}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "frame_seconds",
			Help:      "Search time per frame.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		PeakMagnification: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "peak_magnification",
			Help:      "Largest magnification estimate over the frames searched.",
		}),
	}
	m.registry.MustRegister(m.LevelArea, m.LevelCalls, m.Terminals, m.FrameSeconds, m.PeakMagnification)
	return m
}

// ObserveFrame adds one frame's counters. Safe for concurrent use.
func (m *Metrics) ObserveFrame(fr *FrameResult) {
	for _, ls := range fr.Levels {
		level := strconv.Itoa(ls.Level)
		m.LevelArea.WithLabelValues(level, "all").Add(ls.Area)
		m.LevelArea.WithLabelValues(level, "hit").Add(ls.HitArea)
		m.LevelCalls.WithLabelValues(level).Add(Real(ls.Calls))
	}

	type key struct {
		reason Reason
		class  Classification
	}
	counts := make(map[key]int)
	for _, t := range fr.Terminals {
		counts[key{t.Reason, t.Classification}]++
	}
	for k, n := range counts {
		class := k.class.String()
		if k.reason != Classified {
			class = "none"
		}
		m.Terminals.WithLabelValues(k.reason.String(), class).Add(Real(n))
	}

	m.FrameSeconds.Observe(fr.Elapsed.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if fr.Magnification > m.peak {
		m.peak = fr.Magnification
		m.PeakMagnification.Set(m.peak)
	}
}

// Gatherer exposes the registry, e.g. for tests or an HTTP handler.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteTextfile writes the current values in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
