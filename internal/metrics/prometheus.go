// Package metrics provides Prometheus metrics for the voice-to-PDF service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcription pipeline
// and the HTTP API.
type Metrics struct {
	// Pipeline request metrics
	RequestsTotal     prometheus.Counter
	RequestsSucceeded prometheus.Counter
	RequestsFailed    *prometheus.CounterVec
	RequestDuration   prometheus.Histogram

	// Stage metrics
	StageDuration *prometheus.HistogramVec

	// Audio metrics
	AudioDuration prometheus.Histogram
	AudioChannels prometheus.Histogram

	// Transcript metrics
	TranscriptWords  prometheus.Histogram
	EmptyTranscripts prometheus.Counter

	// Document metrics
	DocumentPages prometheus.Histogram
	DocumentBytes prometheus.Histogram

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPErrors          *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voicepdf_requests_total",
			Help: "Total number of transcription requests processed",
		}),
		RequestsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voicepdf_requests_succeeded_total",
			Help: "Total number of requests that produced a document",
		}),
		RequestsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voicepdf_requests_failed_total",
			Help: "Total number of failed requests by pipeline stage",
		}, []string{"stage"}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_request_duration_seconds",
			Help:    "End-to-end pipeline duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicepdf_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"stage"}),

		AudioDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_audio_duration_seconds",
			Help:    "Duration of decoded audio clips in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		AudioChannels: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_audio_channels",
			Help:    "Channel count of decoded audio clips",
			Buckets: []float64{1, 2, 4, 8},
		}),

		TranscriptWords: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_transcript_words",
			Help:    "Number of recognized words per transcript",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		EmptyTranscripts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voicepdf_empty_transcripts_total",
			Help: "Total number of requests where no speech was recognized",
		}),

		DocumentPages: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_document_pages",
			Help:    "Page count of rendered documents",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50},
		}),
		DocumentBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicepdf_document_bytes",
			Help:    "Size of rendered documents in bytes",
			Buckets: []float64{1024, 4096, 16384, 65536, 262144, 1048576},
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voicepdf_http_requests_total",
			Help: "Total number of HTTP requests by method, endpoint and status code",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voicepdf_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"method", "endpoint"}),
		HTTPErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voicepdf_http_errors_total",
			Help: "Total number of HTTP error responses by method, endpoint and error type",
		}, []string{"method", "endpoint", "error_type"}),
	}
}

// RecordRequest records a pipeline request starting.
func (m *Metrics) RecordRequest() {
	m.RequestsTotal.Inc()
}

// RecordSuccess records a completed pipeline run.
func (m *Metrics) RecordSuccess(durationSeconds float64) {
	m.RequestsSucceeded.Inc()
	m.RequestDuration.Observe(durationSeconds)
}

// RecordFailure records a failed pipeline run at the given stage.
func (m *Metrics) RecordFailure(stage string) {
	m.RequestsFailed.WithLabelValues(stage).Inc()
}

// RecordStage records the duration of one pipeline stage.
func (m *Metrics) RecordStage(stage string, durationSeconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(durationSeconds)
}

// RecordAudio records properties of a decoded clip.
func (m *Metrics) RecordAudio(durationSeconds float64, channels int) {
	m.AudioDuration.Observe(durationSeconds)
	m.AudioChannels.Observe(float64(channels))
}

// RecordTranscript records the recognition outcome.
func (m *Metrics) RecordTranscript(words int, empty bool) {
	m.TranscriptWords.Observe(float64(words))
	if empty {
		m.EmptyTranscripts.Inc()
	}
}

// RecordDocument records properties of a rendered document.
func (m *Metrics) RecordDocument(pages, sizeBytes int) {
	m.DocumentPages.Observe(float64(pages))
	m.DocumentBytes.Observe(float64(sizeBytes))
}

// RecordHTTPRequest records an HTTP request with its response status.
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordHTTPError records an HTTP error response.
func (m *Metrics) RecordHTTPError(method, endpoint, errorType string) {
	m.HTTPErrors.WithLabelValues(method, endpoint, errorType).Inc()
}
