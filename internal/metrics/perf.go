package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Phase is a step of the frame pipeline.
type Phase int

const (
	PhaseBuild Phase = iota
	PhaseStyle
	PhaseLayout
	PhasePaint
	NumPhases
)

var phaseNames = [NumPhases]string{"build", "style", "layout", "paint"}

func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return "unknown"
	}
	return phaseNames[p]
}

const (
	minDuration = time.Microsecond
	maxDuration = 10 * time.Second
)

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minDuration.Nanoseconds(), maxDuration.Nanoseconds(), 2)
}

// Perf keeps HDR histograms of phase and frame durations.
type Perf struct {
	mu     sync.Mutex
	phases [NumPhases]*hdrhistogram.Histogram
	total  *hdrhistogram.Histogram
}

// NewPerf creates empty histograms.
func NewPerf() *Perf {
	p := &Perf{total: newHistogram()}
	for i := range p.phases {
		p.phases[i] = newHistogram()
	}
	return p
}

// clampDuration keeps d in the histograms' range; out of range values would
// be dropped.
func clampDuration(d time.Duration) int64 {
	return min(max(d, minDuration), maxDuration).Nanoseconds()
}

// Record adds a frame.
func (p *Perf) Record(f Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, d := range f.Phases {
		_ = p.phases[i].RecordValue(clampDuration(d))
	}
	_ = p.total.RecordValue(clampDuration(f.Total()))
}

// Reset empties the histograms.
func (p *Perf) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.phases {
		h.Reset()
	}
	p.total.Reset()
}

// Summary is the distribution of one duration.
type Summary struct {
	Count int64
	Mean  time.Duration
	P50   time.Duration
	P90   time.Duration
	P99   time.Duration
	Max   time.Duration
}

func summarize(h *hdrhistogram.Histogram) Summary {
	if h.TotalCount() == 0 {
		return Summary{}
	}
	return Summary{
		Count: h.TotalCount(),
		Mean:  time.Duration(h.Mean()),
		P50:   time.Duration(h.ValueAtQuantile(50)),
		P90:   time.Duration(h.ValueAtQuantile(90)),
		P99:   time.Duration(h.ValueAtQuantile(99)),
		Max:   time.Duration(h.Max()),
	}
}

// PerfInfo is a snapshot of frame timings.
type PerfInfo struct {
	Frame  Summary
	Phases [NumPhases]Summary
}

// Snapshot summarises everything recorded so far.
func (p *Perf) Snapshot() PerfInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	info := PerfInfo{Frame: summarize(p.total)}
	for i, h := range p.phases {
		info.Phases[i] = summarize(h)
	}
	return info
}
