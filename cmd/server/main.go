package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Prakashdeveloper01/Audio-file/internal/config"
	"github.com/Prakashdeveloper01/Audio-file/internal/document"
	"github.com/Prakashdeveloper01/Audio-file/internal/metrics"
	"github.com/Prakashdeveloper01/Audio-file/internal/pipeline"
	"github.com/Prakashdeveloper01/Audio-file/internal/recognizer/vosk"
	"github.com/Prakashdeveloper01/Audio-file/internal/server"
)

const (
	defaultConfigPath = "configs/config.yaml"
	serviceName       = "voice-pdf-service"
	serviceVersion    = "1.0.0"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger based on configuration
	logger := initLogger(cfg.Logging)

	// Log service startup
	logger.Info("Service starting",
		slog.String("service", serviceName),
		slog.String("version", serviceVersion),
		slog.String("config_path", *configPath),
	)

	// Log configuration summary
	logger.Info("Configuration loaded",
		slog.String("http_address", fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port)),
		slog.Int64("max_upload_bytes", cfg.Audio.MaxUploadBytes),
		slog.String("model_path", cfg.Recognizer.ModelPath),
		slog.String("page_size", cfg.Document.PageSize),
		slog.String("log_level", cfg.Logging.Level),
	)

	// Initialize Prometheus metrics
	appMetrics := metrics.NewMetrics()
	logger.Info("Prometheus metrics initialized")

	// Load the acoustic model once; it is shared read-only by all requests.
	// A missing model is an unrecoverable startup condition.
	vosk.SetLogLevel(cfg.Recognizer.LogLevel)
	engine, err := vosk.New(cfg.Recognizer.ModelPath)
	if err != nil {
		logger.Error("Failed to load recognition model", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer engine.Close()
	logger.Info("Recognition model loaded",
		slog.String("model_path", cfg.Recognizer.ModelPath),
	)

	// Build the document renderer from the configured page geometry
	renderer := document.NewRenderer(document.Layout{
		Orientation: cfg.Document.Orientation,
		PageSize:    cfg.Document.PageSize,
		Margin:      cfg.Document.Margin,
		FontFamily:  cfg.Document.FontFamily,
		FontSize:    cfg.Document.FontSize,
		LineHeight:  cfg.Document.LineHeight,
	}, cfg.Document.Placeholder)

	// Wire the pipeline coordinator
	coordinator := pipeline.NewCoordinator(engine, renderer, logger, appMetrics)
	logger.Info("Pipeline coordinator initialized")

	// Initialize and start the HTTP server
	httpServer := server.NewHTTPServer(cfg, logger, coordinator, appMetrics)
	if err := httpServer.Start(); err != nil {
		logger.Error("Failed to start HTTP server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Service started successfully, waiting for signals...",
		slog.String("http_address", fmt.Sprintf("%s:%d", cfg.HTTP.Address, cfg.HTTP.Port)),
	)

	sig := <-sigChan
	logger.Info("Received shutdown signal", slog.String("signal", sig.String()))

	logger.Info("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.GetShutdownTimeout())
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping HTTP server", slog.String("error", err.Error()))
	}

	// Get final statistics
	stats := coordinator.GetStats()
	logger.Info("Final pipeline statistics",
		slog.Uint64("total_requests", stats.TotalRequests),
		slog.Uint64("success_requests", stats.SuccessRequests),
		slog.Uint64("failed_requests", stats.FailedRequests),
		slog.Float64("success_rate", stats.SuccessRate),
	)

	logger.Info("Service stopped")
}

// initLogger creates and configures the structured logger based on configuration
func initLogger(cfg config.LoggingConfig) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo // default fallback
	}

	// Configure handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug, // Add source info for debug level
	}

	// Determine output destination
	var output *os.File
	switch cfg.Output {
	case "stderr":
		output = os.Stderr
	case "stdout", "":
		output = os.Stdout
	default:
		// Assume it's a file path
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v, falling back to stdout\n", cfg.Output, err)
			output = os.Stdout
		} else {
			output = file
		}
	}

	// Create handler based on format
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "text", "":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
