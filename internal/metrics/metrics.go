// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// File results
const (
	ResultRenamed = "renamed"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
	ResultPlanned = "planned"
)

// Lookup results
const (
	LookupOK       = "ok"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

var (
	registerOnce sync.Once

	// Registry holds only this tool's collectors so the textfile output
	// carries no Go runtime noise.
	Registry = prometheus.NewRegistry()

	filesProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isbn_renamer",
		Name:      "files_total",
		Help:      "Total number of input files by outcome",
	}, []string{"result"})
	lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isbn_renamer",
		Name:      "lookups_total",
		Help:      "Total number of metadata lookups by source and result",
	}, []string{"source", "result"})
	lookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "isbn_renamer",
		Name:      "lookup_duration_seconds",
		Help:      "Histogram of metadata lookup durations in seconds by source",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10),
	}, []string{"source"})
	lastRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "isbn_renamer",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last run finished",
	})
)

// Register adds the collectors to Registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(filesProcessed, lookups, lookupDuration, lastRunTimestamp)
	})
}

func IncFile(result string) { filesProcessed.WithLabelValues(result).Inc() }
func IncLookup(source, result string) {
	lookups.WithLabelValues(source, result).Inc()
}
func ObserveLookupDuration(source string, d time.Duration) {
	lookupDuration.WithLabelValues(source).Observe(d.Seconds())
}

// WriteTextfile stamps the run time and writes all registered metrics in the
// node_exporter textfile collector format.
func WriteTextfile(path string) error {
	Register()
	lastRunTimestamp.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
