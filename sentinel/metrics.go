package sentinel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for callsTotal. Every guarded call lands on exactly
// one of them.
const (
	// outcomeOK: all checks passed (or were skipped) and the function ran.
	outcomeOK = "ok"
	// outcomeRejected: at least one check failed and the failure handler
	// turned the failure into an error, so the function never ran.
	outcomeRejected = "rejected"
	// outcomeSuppressed: at least one check failed but the failure handler
	// swallowed the failure, so the function ran anyway.
	outcomeSuppressed = "suppressed"
	// outcomeBindError: the arguments could not be bound to the signature,
	// so no checks ran at all.
	outcomeBindError = "bind_error"
)

var (
	// callsTotal counts guarded calls by outcome.
	//
	// Labels:
	//   - outcome: "ok", "rejected", "suppressed" or "bind_error", see the
	//     outcome constants above.
	//
	// Usage example in dashboards:
	//   - rate(typesentinel_calls_total[5m]) - Guarded calls per second
	//   - sum(rate(typesentinel_calls_total{outcome="rejected"}[5m])) - Rejection rate
	//   - typesentinel_calls_total{outcome="suppressed"} - Calls that proceeded despite failures
	//
	// The nolint:gochecknoglobals directive is used because Prometheus metrics
	// are intentionally global by design - they need to be registered once and
	// accessed throughout the application lifecycle.
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "typesentinel_calls_total",
		Help: "The total number of guarded calls, by outcome",
	}, []string{"outcome"})

	// checksTotal counts individual check evaluations.
	//
	// Labels:
	//   - kind: "positional" or "keyword", which addressing mode the check uses.
	//   - passed: "true" if the argument matched its expected type (including
	//     skipped optional checks), "false" otherwise.
	//
	// Usage example in dashboards:
	//   - sum(rate(typesentinel_checks_total{passed="false"}[5m])) by (kind) - Failures by kind
	//   - sum(rate(typesentinel_checks_total{passed="false"}[5m])) /
	//     sum(rate(typesentinel_checks_total[5m])) - Overall failure ratio
	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "typesentinel_checks_total",
		Help: "The total number of check evaluations",
	}, []string{"kind", "passed"})

	// validateTime is a histogram of per-call validation duration in
	// milliseconds, labeled by guard name. Validation is reflection over a
	// handful of arguments, so the buckets skew far lower than a typical
	// request-latency histogram.
	//
	// Usage example in dashboards:
	//   - histogram_quantile(0.95, rate(typesentinel_validate_time_millis_bucket[5m])) - p95 latency
	//   - rate(typesentinel_validate_time_millis_sum[5m]) /
	//     rate(typesentinel_validate_time_millis_count[5m]) - Average duration by function
	validateTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name: "typesentinel_validate_time_millis",
		Help: "The time it takes to validate one call's arguments, in milliseconds",
		Buckets: []float64{
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 5, 10, 25, 50, 100,
		},
	}, []string{"function"})
)

// init pre-initializes the counters with zero values for every known label
// combination. Prometheus queries on metrics that don't exist yet return no
// data, so without this the first rejected call would appear "late" and
// rate() calculations over the series would spike. Pre-registering also lets
// alerting distinguish a zero rate from a metric that never existed.
func init() {
	for _, outcome := range []string{outcomeOK, outcomeRejected, outcomeSuppressed, outcomeBindError} {
		callsTotal.WithLabelValues(outcome).Add(0)
	}

	for _, kind := range []string{"positional", "keyword"} {
		checksTotal.WithLabelValues(kind, "true").Add(0)
		checksTotal.WithLabelValues(kind, "false").Add(0)
	}
}
