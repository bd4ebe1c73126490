package apiassert

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/verityhq/verity/packages/assert"
)

// PerfRecorder aggregates response latencies across assertion calls so tests
// can assert on percentiles rather than single samples.
type PerfRecorder struct {
	// Latency histogram in microseconds for precision; 60s ceiling.
	hist *hdrhistogram.Histogram
}

// NewPerfRecorder creates an empty latency recorder.
func NewPerfRecorder() *PerfRecorder {
	return &PerfRecorder{
		hist: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one latency sample.
func (p *PerfRecorder) Record(d time.Duration) {
	_ = p.hist.RecordValue(d.Microseconds())
}

// Percentile returns the latency at quantile q (e.g. 95 for p95).
func (p *PerfRecorder) Percentile(q float64) time.Duration {
	return time.Duration(p.hist.ValueAtQuantile(q)) * time.Microsecond
}

// Count reports the number of recorded samples.
func (p *PerfRecorder) Count() int64 {
	return p.hist.TotalCount()
}

// Reset drops all recorded samples.
func (p *PerfRecorder) Reset() {
	p.hist.Reset()
}

// Perf exposes the engine's latency recorder.
func (e *Engine) Perf() *PerfRecorder {
	return e.perf
}

// AssertPercentileUnder asserts that the recorded latency at quantile q stays
// under max. It needs at least one recorded sample.
func (e *Engine) AssertPercentileUnder(q float64, max time.Duration, opts *assert.Options) error {
	if e.perf.Count() == 0 {
		return e.base.Assert(false, "no latency samples recorded", opts)
	}
	got := e.perf.Percentile(q)
	return e.base.Assert(got <= max,
		fmt.Sprintf("p%g latency %s exceeds limit %s", q, got, max), opts)
}
