package metrics

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Frame is the work of one committed frame.
type Frame struct {
	Phases    [NumPhases]time.Duration
	Rebuilt   int
	Restyled  int
	LaidOut   int
	Fallbacks int
	Overflows int
}

// Total returns the summed duration of all phases.
func (f Frame) Total() time.Duration {
	var d time.Duration
	for _, p := range f.Phases {
		d += p
	}
	return d
}

// Metrics holds the collectors of one session.
type Metrics struct {
	FramesCommitted prometheus.Counter
	FrameErrors     prometheus.Counter
	NodesRebuilt    prometheus.Counter
	NodesRestyled   prometheus.Counter
	NodesLaidOut    prometheus.Counter
	Fallbacks       prometheus.Counter
	Overflows       prometheus.Counter
	FrameDuration   prometheus.Histogram

	perf *Perf
}

// New creates the collectors for a session and registers them with reg.
// A nil reg leaves them unregistered. Every series carries the session id
// as a constant label.
func New(reg prometheus.Registerer, session string) (*Metrics, error) {
	labels := prometheus.Labels{"session": session}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "weft",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &Metrics{
		FramesCommitted: counter("frames_committed_total", "Frames committed."),
		FrameErrors:     counter("frame_errors_total", "Frames abandoned because the view failed."),
		NodesRebuilt:    counter("nodes_rebuilt_total", "Nodes described again by a rebuild."),
		NodesRestyled:   counter("nodes_restyled_total", "Nodes whose style was resolved."),
		NodesLaidOut:    counter("nodes_laid_out_total", "Nodes positioned by the layout pass."),
		Fallbacks:       counter("cascade_fallbacks_total", "Style declarations that fell back to a default."),
		Overflows:       counter("layout_overflows_total", "Boxes flagged as overflowing."),
		FrameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "weft",
			Name:        "frame_duration_seconds",
			Help:        "Time from the start of a build to frame commit.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(50e-6, 2, 14),
		}),
		perf: NewPerf(),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering frame metrics")
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.FramesCommitted, m.FrameErrors, m.NodesRebuilt, m.NodesRestyled,
		m.NodesLaidOut, m.Fallbacks, m.Overflows, m.FrameDuration,
	}
}

// Unregister removes the collectors from reg.
func (m *Metrics) Unregister(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}

// Committed records a committed frame.
func (m *Metrics) Committed(f Frame) {
	m.FramesCommitted.Inc()
	m.NodesRebuilt.Add(float64(f.Rebuilt))
	m.NodesRestyled.Add(float64(f.Restyled))
	m.NodesLaidOut.Add(float64(f.LaidOut))
	m.Fallbacks.Add(float64(f.Fallbacks))
	m.Overflows.Add(float64(f.Overflows))
	m.FrameDuration.Observe(f.Total().Seconds())
	m.perf.Record(f)
}

// Failed records an abandoned frame.
func (m *Metrics) Failed() {
	m.FrameErrors.Inc()
}

// Perf returns the in-process percentiles.
func (m *Metrics) Perf() PerfInfo {
	return m.perf.Snapshot()
}
