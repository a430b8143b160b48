package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReportMetrics exposes counters/histograms for the report pipeline.
type ReportMetrics struct {
	synthesisTotal    *prometheus.CounterVec
	comparisonTotal   *prometheus.CounterVec
	providerLatency   *prometheus.HistogramVec
	fallbackInjected  *prometheus.CounterVec
	comparisonLatency prometheus.Histogram
}

func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	m := &ReportMetrics{
		synthesisTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoice",
			Subsystem: "report",
			Name:      "synthesis_total",
			Help:      "Total report synthesis attempts by outcome",
		}, []string{"outcome", "used_retry"}),
		comparisonTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoice",
			Subsystem: "report",
			Name:      "comparison_total",
			Help:      "Total report comparisons by scoring mode",
		}, []string{"mode"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medvoice",
			Subsystem: "provider",
			Name:      "call_latency_seconds",
			Help:      "Latency of upstream chat/embedding calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		fallbackInjected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medvoice",
			Subsystem: "report",
			Name:      "fallback_injected_total",
			Help:      "Total synthesis runs that injected domain fallback content",
		}, []string{"field"}),
		comparisonLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "medvoice",
			Subsystem: "report",
			Name:      "comparison_latency_seconds",
			Help:      "End-to-end latency of report comparisons",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.synthesisTotal, m.comparisonTotal, m.providerLatency, m.fallbackInjected, m.comparisonLatency)
	return m
}

func (m *ReportMetrics) ObserveSynthesis(outcome string, usedRetry bool) {
	if m == nil {
		return
	}
	retry := "false"
	if usedRetry {
		retry = "true"
	}
	m.synthesisTotal.WithLabelValues(outcome, retry).Inc()
}

func (m *ReportMetrics) ObserveComparison(mode string, seconds float64) {
	if m == nil {
		return
	}
	m.comparisonTotal.WithLabelValues(mode).Inc()
	m.comparisonLatency.Observe(seconds)
}

func (m *ReportMetrics) ObserveProviderCall(provider, operation string, seconds float64) {
	if m == nil {
		return
	}
	m.providerLatency.WithLabelValues(provider, operation).Observe(seconds)
}

func (m *ReportMetrics) ObserveFallbackInjected(field string) {
	if m == nil {
		return
	}
	m.fallbackInjected.WithLabelValues(field).Inc()
}
