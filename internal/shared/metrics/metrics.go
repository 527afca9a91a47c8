package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	batchStartedTotal      atomic.Uint64
	batchCompletedTotal    atomic.Uint64
	upstreamFailedTotal    atomic.Uint64
	extractionFailedTotal  atomic.Uint64
	parseFailedTotal       atomic.Uint64
	documentsAnalyzedTotal atomic.Uint64

	batchDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncBatchStarted increments the analyze-batch started counter.
func IncBatchStarted() {
	batchStartedTotal.Add(1)
}

// IncBatchCompleted increments the analyze-batch completed counter.
func IncBatchCompleted() {
	batchCompletedTotal.Add(1)
}

// IncUpstreamFailed increments the model-call failure counter.
func IncUpstreamFailed() {
	upstreamFailedTotal.Add(1)
}

// IncExtractionFailed increments the per-document extraction failure counter.
func IncExtractionFailed() {
	extractionFailedTotal.Add(1)
}

// IncParseFailed increments the per-document parse failure counter.
func IncParseFailed() {
	parseFailedTotal.Add(1)
}

// AddDocumentsAnalyzed records documents that received an analysis row.
func AddDocumentsAnalyzed(n int) {
	if n > 0 {
		documentsAnalyzedTotal.Add(uint64(n))
	}
}

// ObserveBatchDurationMs records a batch duration in milliseconds.
func ObserveBatchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	batchDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analyze_batch_started_total", "Total analyze batches started", batchStartedTotal.Load())
	writeCounter(&buf, "analyze_batch_completed_total", "Total analyze batches completed", batchCompletedTotal.Load())
	writeCounter(&buf, "analyze_upstream_failed_total", "Total failed model calls", upstreamFailedTotal.Load())
	writeCounter(&buf, "extraction_failed_total", "Total per-document extraction failures", extractionFailedTotal.Load())
	writeCounter(&buf, "analysis_parse_failed_total", "Total per-document parse failures", parseFailedTotal.Load())
	writeCounter(&buf, "documents_analyzed_total", "Total documents with a persisted analysis", documentsAnalyzedTotal.Load())
	writeHistogram(&buf, "analyze_batch_duration_ms", "Analyze batch duration in milliseconds", batchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
