package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Prakashdeveloper01/Audio-file/internal/config"
	"github.com/Prakashdeveloper01/Audio-file/internal/metrics"
	"github.com/Prakashdeveloper01/Audio-file/internal/pipeline"
)

// HTTPServer provides the upload endpoint plus monitoring and management
// endpoints around the transcription pipeline.
type HTTPServer struct {
	server      *http.Server
	logger      *slog.Logger
	config      *config.Config
	coordinator *pipeline.Coordinator
	metrics     *metrics.Metrics

	// Server state
	startTime time.Time
	mu        sync.RWMutex
}

// NewHTTPServer creates a new HTTP server wired to the pipeline coordinator.
func NewHTTPServer(cfg *config.Config, logger *slog.Logger,
	coordinator *pipeline.Coordinator, m *metrics.Metrics) *HTTPServer {

	h := &HTTPServer{
		logger:      logger,
		config:      cfg,
		coordinator: coordinator,
		metrics:     m,
		startTime:   time.Now(),
	}

	// Create HTTP server with routes
	mux := http.NewServeMux()
	h.setupRoutes(mux)

	h.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port),
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.GetReadTimeout(),
		WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	return h
}

// Handler returns the configured route handler, mainly for tests.
func (h *HTTPServer) Handler() http.Handler {
	return h.server.Handler
}

// setupRoutes configures HTTP API routes
func (h *HTTPServer) setupRoutes(mux *http.ServeMux) {
	// Browser recorder page
	mux.HandleFunc("/", h.withMetrics("/", h.handleIndex))

	// Audio upload -> PDF download
	mux.HandleFunc("/audio-to-pdf", h.withMetrics("/audio-to-pdf", h.handleAudioToPDF))

	// Health check endpoint
	mux.HandleFunc("/health", h.withMetrics("/health", h.handleHealth))

	// Configuration endpoint
	mux.HandleFunc("/config", h.withMetrics("/config", h.handleConfig))

	// Statistics endpoint
	mux.HandleFunc("/stats", h.withMetrics("/stats", h.handleStats))

	// Prometheus metrics endpoint (no metrics needed for metrics endpoint)
	mux.Handle("/metrics", promhttp.Handler())
}

// withMetrics wraps an HTTP handler with metrics collection
func (h *HTTPServer) withMetrics(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		// Create a response writer wrapper to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: 200}

		// Call the original handler
		handler(ww, r)

		// Record metrics
		duration := time.Since(startTime).Seconds()
		statusCode := fmt.Sprintf("%d", ww.statusCode)

		h.metrics.RecordHTTPRequest(r.Method, endpoint, statusCode, duration)

		// Record error if status code indicates an error
		if ww.statusCode >= 400 {
			errorType := "client_error"
			if ww.statusCode >= 500 {
				errorType = "server_error"
			}
			h.metrics.RecordHTTPError(r.Method, endpoint, errorType)
		}
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server
func (h *HTTPServer) Start() error {
	h.logger.Info("Starting HTTP server",
		slog.String("address", h.server.Addr),
	)

	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (h *HTTPServer) Stop(ctx context.Context) error {
	h.logger.Info("Stopping HTTP server...")

	return h.server.Shutdown(ctx)
}

// handleIndex serves the browser recorder page
func (h *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// handleAudioToPDF implements the upload endpoint: a multipart WAV upload is
// run through the pipeline and answered with a PDF attachment. The caller
// receives either a complete document or an error; never a partial one.
func (h *HTTPServer) handleAudioToPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := h.config.Audio.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "Error parsing upload form", http.StatusBadRequest)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Audio file required (field 'file')", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading upload", http.StatusBadRequest)
		return
	}

	pdfBytes, err := h.coordinator.Process(r.Context(), data)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=transcribed.pdf`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
	_, _ = w.Write(pdfBytes)
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses:
// malformed audio is the caller's fault, everything else is server-side.
func (h *HTTPServer) writePipelineError(w http.ResponseWriter, err error) {
	var decodeErr *pipeline.DecodeError
	var recognitionErr *pipeline.RecognitionError
	var renderErr *pipeline.RenderError

	switch {
	case errors.As(err, &decodeErr):
		http.Error(w, "Unsupported or malformed audio upload", http.StatusBadRequest)
	case errors.As(err, &recognitionErr):
		http.Error(w, "Transcription failed", http.StatusInternalServerError)
	case errors.As(err, &renderErr):
		http.Error(w, "Document rendering failed", http.StatusInternalServerError)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleHealth implements the /health endpoint
func (h *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(h.startTime)
	stats := h.coordinator.GetStats()

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    uptime.String(),
		"service": map[string]interface{}{
			"name":    "voice-pdf-service",
			"version": "1.0.0",
		},
		"components": map[string]interface{}{
			"recognizer": map[string]interface{}{
				"status":     "loaded",
				"model_path": h.config.Recognizer.ModelPath,
			},
			"pipeline": map[string]interface{}{
				"status":           "running",
				"total_requests":   stats.TotalRequests,
				"success_requests": stats.SuccessRequests,
				"failed_requests":  stats.FailedRequests,
				"success_rate":     stats.SuccessRate,
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// handleConfig implements the /config endpoint
func (h *HTTPServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Return sanitized configuration
	sanitizedConfig := map[string]interface{}{
		"http": map[string]interface{}{
			"port":          h.config.HTTP.Port,
			"address":       h.config.HTTP.Address,
			"read_timeout":  h.config.HTTP.ReadTimeout,
			"write_timeout": h.config.HTTP.WriteTimeout,
		},
		"audio": map[string]interface{}{
			"max_upload_bytes": h.config.Audio.MaxUploadBytes,
		},
		"recognizer": map[string]interface{}{
			"model_path": h.config.Recognizer.ModelPath,
		},
		"document": map[string]interface{}{
			"page_size":   h.config.Document.PageSize,
			"orientation": h.config.Document.Orientation,
			"margin":      h.config.Document.Margin,
			"font_family": h.config.Document.FontFamily,
			"font_size":   h.config.Document.FontSize,
			"line_height": h.config.Document.LineHeight,
			"placeholder": h.config.Document.Placeholder,
		},
		"logging": map[string]interface{}{
			"level":  h.config.Logging.Level,
			"format": h.config.Logging.Format,
			"output": h.config.Logging.Output,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sanitizedConfig)
}

// handleStats implements the /stats endpoint
func (h *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(h.startTime)

	stats := map[string]interface{}{
		"uptime":    uptime.String(),
		"timestamp": time.Now().UTC(),
		"pipeline":  h.coordinator.GetStats(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
