package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d", snap.count)
	}
	if snap.sum != 5055 {
		t.Fatalf("sum = %v", snap.sum)
	}
	// Per-bucket counts; Render accumulates them for the le series.
	want := []uint64{1, 1, 0}
	for i, n := range want {
		if snap.counts[i] != n {
			t.Fatalf("bucket %d = %d, want %d", i, snap.counts[i], n)
		}
	}
}

func TestRenderEmitsPrometheusText(t *testing.T) {
	IncBatchStarted()
	AddDocumentsAnalyzed(2)
	ObserveBatchDurationMs(42)

	out := Render()
	for _, want := range []string{
		"# TYPE analyze_batch_started_total counter",
		"analyze_batch_started_total",
		"documents_analyzed_total",
		"# TYPE analyze_batch_duration_ms histogram",
		`analyze_batch_duration_ms_bucket{le="+Inf"}`,
		"analyze_batch_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
}
