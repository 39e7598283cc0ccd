package prometheus

import (
	"runtime"
	"strconv"
	"time"
)

// Enumeration outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeBadSMILES    = "bad_smiles"
	OutcomeUnknownGroup = "unknown_group"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// AppMetrics holds every metric FragSAR exports.
type AppMetrics struct {
	// HTTP
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPResponseSize    HistogramVec
	HTTPInFlight        GaugeVec

	// Enumeration
	EnumerationsTotal     CounterVec
	EnumerationProducts   HistogramVec
	EnumerationCandidates CounterVec
	EnumerationDuration   HistogramVec
	DescriptorDuration    HistogramVec
	FragmentTableSize     GaugeVec

	// Service
	BuildInfo   GaugeVec
	ErrorsTotal CounterVec
}

var (
	DefaultHTTPDurationBuckets        = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultEnumerationDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultProductBuckets             = []float64{0, 1, 5, 10, 25, 50, 100, 200, 500, 1000, 5000, 10000}
	DefaultSizeBuckets                = []float64{100, 1000, 10000, 100000, 1000000, 10000000}
)

// NewAppMetrics registers every metric on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route")
	m.HTTPResponseSize = collector.RegisterHistogram("http_response_size_bytes", "HTTP response size", DefaultSizeBuckets, "method", "route")
	m.HTTPInFlight = collector.RegisterGauge("http_requests_in_flight", "HTTP requests being served")

	m.EnumerationsTotal = collector.RegisterCounter("enumerations_total", "Enumeration requests by outcome", "outcome")
	m.EnumerationProducts = collector.RegisterHistogram("enumeration_products", "Unique products returned per enumeration", DefaultProductBuckets)
	m.EnumerationCandidates = collector.RegisterCounter("enumeration_candidates_total", "Substitution candidates by result", "result")
	m.EnumerationDuration = collector.RegisterHistogram("enumeration_duration_seconds", "Time spent generating products", DefaultEnumerationDurationBuckets)
	m.DescriptorDuration = collector.RegisterHistogram("descriptor_duration_seconds", "Time spent computing descriptors for one request", DefaultEnumerationDurationBuckets)
	m.FragmentTableSize = collector.RegisterGauge("fragment_table_size", "Number of fragment groups available")

	m.BuildInfo = collector.RegisterGauge("build_info", "Build information", "version", "go_version")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component and code", "component", "code")

	return m
}

// SetBuildInfo publishes version as a constant 1-valued gauge.
func (m *AppMetrics) SetBuildInfo(version string) {
	if m == nil {
		return
	}
	m.BuildInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordHTTPRequest records one served request.
func (m *AppMetrics) RecordHTTPRequest(method, route string, status int, d time.Duration, respSize int64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(respSize))
}

// EnumerationSample is the outcome of one enumeration request.
type EnumerationSample struct {
	Outcome    string
	Products   int
	Accepted   int
	Rejected   int
	Duplicates int
	Enumerate  time.Duration
	Describe   time.Duration
}

// RecordEnumeration records s. Product counts and timings are only observed
// for successful runs.
func (m *AppMetrics) RecordEnumeration(s EnumerationSample) {
	if m == nil {
		return
	}
	m.EnumerationsTotal.WithLabelValues(s.Outcome).Inc()
	if s.Outcome != OutcomeOK {
		return
	}
	m.EnumerationProducts.WithLabelValues().Observe(float64(s.Products))
	m.EnumerationCandidates.WithLabelValues("accepted").Add(float64(s.Accepted))
	m.EnumerationCandidates.WithLabelValues("rejected").Add(float64(s.Rejected))
	m.EnumerationCandidates.WithLabelValues("duplicate").Add(float64(s.Duplicates))
	m.EnumerationDuration.WithLabelValues().Observe(s.Enumerate.Seconds())
	m.DescriptorDuration.WithLabelValues().Observe(s.Describe.Seconds())
}

// RecordError counts an error raised by component.
func (m *AppMetrics) RecordError(component, code string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}

//Personal.AI order the ending
