package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	require.NoError(t, c.Write(metric))
	return metric.GetCounter().GetValue()
}

func frame(build, style, layout, paint time.Duration) Frame {
	return Frame{Phases: [NumPhases]time.Duration{build, style, layout, paint}}
}

func TestMetrics_Committed(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "s1")
	require.NoError(t, err)

	f := frame(time.Millisecond, time.Millisecond, 2*time.Millisecond, time.Millisecond)
	f.Rebuilt, f.Restyled, f.LaidOut, f.Fallbacks, f.Overflows = 3, 4, 5, 1, 2
	m.Committed(f)
	m.Committed(Frame{})
	m.Failed()

	require.Equal(t, 2.0, counterValue(t, m.FramesCommitted))
	require.Equal(t, 1.0, counterValue(t, m.FrameErrors))
	require.Equal(t, 3.0, counterValue(t, m.NodesRebuilt))
	require.Equal(t, 4.0, counterValue(t, m.NodesRestyled))
	require.Equal(t, 5.0, counterValue(t, m.NodesLaidOut))
	require.Equal(t, 1.0, counterValue(t, m.Fallbacks))
	require.Equal(t, 2.0, counterValue(t, m.Overflows))

	hist := &dto.Metric{}
	require.NoError(t, m.FrameDuration.Write(hist))
	require.Equal(t, uint64(2), hist.GetHistogram().GetSampleCount())

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, fam := range families {
		names[fam.GetName()] = true
		for _, metric := range fam.GetMetric() {
			require.Equal(t, "session", metric.GetLabel()[0].GetName())
			require.Equal(t, "s1", metric.GetLabel()[0].GetValue())
		}
	}
	for _, want := range []string{
		"weft_frames_committed_total",
		"weft_frame_errors_total",
		"weft_nodes_rebuilt_total",
		"weft_nodes_restyled_total",
		"weft_nodes_laid_out_total",
		"weft_frame_duration_seconds",
		"weft_cascade_fallbacks_total",
		"weft_layout_overflows_total",
	} {
		require.True(t, names[want], "missing %s", want)
	}
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "s1")
	require.NoError(t, err)

	_, err = New(reg, "s1")
	require.Error(t, err)

	m.Unregister(reg)
	_, err = New(reg, "s1")
	require.NoError(t, err)
}

func TestMetrics_NilRegisterer(t *testing.T) {
	m, err := New(nil, "x")
	require.NoError(t, err)
	m.Committed(frame(time.Millisecond, 0, 0, 0))
	require.Equal(t, int64(1), m.Perf().Frame.Count)
}

func TestPerf_Snapshot(t *testing.T) {
	p := NewPerf()
	require.Equal(t, PerfInfo{}, p.Snapshot())

	for i := 1; i <= 100; i++ {
		p.Record(frame(time.Duration(i)*time.Millisecond, 0, time.Hour, 0))
	}
	info := p.Snapshot()

	build := info.Phases[PhaseBuild]
	require.Equal(t, int64(100), build.Count)
	require.InDelta(t, float64(50*time.Millisecond), float64(build.P50), float64(time.Millisecond))
	require.InDelta(t, float64(99*time.Millisecond), float64(build.P99), float64(time.Millisecond))
	require.InDelta(t, float64(100*time.Millisecond), float64(build.Max), float64(time.Millisecond))

	// Out of range durations are clamped, not dropped.
	require.Equal(t, int64(100), info.Phases[PhaseLayout].Count)
	require.InDelta(t, float64(maxDuration), float64(info.Phases[PhaseLayout].Max), float64(maxDuration)/50)
	require.Equal(t, time.Microsecond, info.Phases[PhaseStyle].P50.Round(time.Microsecond))

	p.Reset()
	require.Zero(t, p.Snapshot().Frame.Count)
}

func TestPhase_String(t *testing.T) {
	require.Equal(t, "layout", PhaseLayout.String())
	require.Equal(t, "unknown", NumPhases.String())
}
