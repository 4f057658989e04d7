package bench

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeMatch    = "match"
	outcomeMismatch = "mismatch"
)

// Metrics holds the Prometheus instruments a harness run reports through,
// following the teacher pack's promauto-registered CounterVec/Histogram
// idiom (ssargent-freyjadb/pkg/api/metrics.go) rather than hand-rolled
// counters.
type Metrics struct {
	lookupsTotal   *prometheus.CounterVec
	elapsedSeconds prometheus.Histogram
}

// NewMetrics constructs and registers the run's metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radix_bench_lookups_total",
				Help: "Total number of harness lookups performed, by variant and outcome.",
			},
			[]string{"variant", "outcome"},
		),
		elapsedSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "radix_bench_elapsed_seconds",
				Help:    "Elapsed wall-clock time of the parallel lookup phase.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordLookup records one worker lookup's outcome.
func (m *Metrics) RecordLookup(variant string, matched bool) {
	outcome := outcomeMatch
	if !matched {
		outcome = outcomeMismatch
	}
	m.lookupsTotal.WithLabelValues(variant, outcome).Inc()
}

// RecordElapsed records the measured duration of one completed run.
func (m *Metrics) RecordElapsed(seconds float64) {
	m.elapsedSeconds.Observe(seconds)
}

// ServeUntil serves reg's metrics on addr until ctx is done, then shuts the
// listener down. It returns once the server has stopped.
func ServeUntil(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}
