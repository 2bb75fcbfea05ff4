package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Prakashdeveloper01/Audio-file/internal/audio"
	"github.com/Prakashdeveloper01/Audio-file/internal/document"
	"github.com/Prakashdeveloper01/Audio-file/internal/metrics"
	"github.com/Prakashdeveloper01/Audio-file/internal/recognizer"
)

// Pipeline stage names used in metrics labels and statistics.
const (
	StageDecode    = "decode"
	StageRecognize = "recognize"
	StageRender    = "render"
)

// Coordinator runs the transcription pipeline: decode the uploaded container,
// mix down to mono, recognize in one finalized pass, render the transcript
// into a paginated document. Each invocation is an independent synchronous
// run; the coordinator holds no per-request state, so it is safe for
// concurrent use.
type Coordinator struct {
	engine   recognizer.Engine
	renderer *document.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics

	// Statistics
	totalRequests   uint64
	successRequests uint64
	failedRequests  uint64
	totalDuration   time.Duration

	mu sync.RWMutex
}

// Stats represents coordinator statistics for monitoring endpoints.
type Stats struct {
	TotalRequests   uint64  `json:"total_requests"`
	SuccessRequests uint64  `json:"success_requests"`
	FailedRequests  uint64  `json:"failed_requests"`
	SuccessRate     float64 `json:"success_rate"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
}

// NewCoordinator creates a pipeline coordinator.
func NewCoordinator(engine recognizer.Engine, renderer *document.Renderer, logger *slog.Logger, m *metrics.Metrics) *Coordinator {
	return &Coordinator{
		engine:   engine,
		renderer: renderer,
		logger:   logger,
		metrics:  m,
	}
}

// Process turns an encoded audio byte stream into an encoded document byte
// stream. Failures carry one of three typed errors (*DecodeError,
// *RecognitionError, *RenderError); the first failing stage aborts the run
// and nothing partial is returned. All intermediate buffers are scoped to
// the call.
func (c *Coordinator) Process(ctx context.Context, encodedAudio []byte) ([]byte, error) {
	start := time.Now()
	c.metrics.RecordRequest()

	// Decode + mixdown
	stageStart := time.Now()
	clip, err := audio.Decode(encodedAudio)
	if err != nil {
		c.recordFailure(StageDecode)
		c.logger.Warn("Audio decode failed",
			slog.Int("input_bytes", len(encodedAudio)),
			slog.String("error", err.Error()),
		)
		return nil, &DecodeError{Err: err}
	}
	buffer := clip.Downmix()
	c.metrics.RecordStage(StageDecode, time.Since(stageStart).Seconds())
	c.metrics.RecordAudio(clip.Duration(), clip.Channels)

	c.logger.Debug("Audio normalized",
		slog.Int("sample_rate", buffer.SampleRate),
		slog.Int("channels", clip.Channels),
		slog.Int("frames", clip.Frames()),
	)

	// Recognize
	stageStart = time.Now()
	result, err := c.engine.Transcribe(ctx, buffer.Samples, buffer.SampleRate)
	if err != nil {
		c.recordFailure(StageRecognize)
		c.logger.Error("Recognition failed",
			slog.Int("sample_rate", buffer.SampleRate),
			slog.String("error", err.Error()),
		)
		return nil, &RecognitionError{Err: err}
	}
	c.metrics.RecordStage(StageRecognize, time.Since(stageStart).Seconds())
	c.metrics.RecordTranscript(len(result.Words), result.Empty())

	// Render
	stageStart = time.Now()
	doc, err := c.renderer.Render(result.Text)
	if err != nil {
		c.recordFailure(StageRender)
		c.logger.Error("Document render failed",
			slog.Int("transcript_chars", len(result.Text)),
			slog.String("error", err.Error()),
		)
		return nil, &RenderError{Err: err}
	}
	c.metrics.RecordStage(StageRender, time.Since(stageStart).Seconds())
	c.metrics.RecordDocument(doc.Pages, len(doc.Bytes))

	duration := time.Since(start)
	c.recordSuccess(duration)
	c.metrics.RecordSuccess(duration.Seconds())

	c.logger.Info("Transcription completed",
		slog.Float64("audio_seconds", clip.Duration()),
		slog.Int("words", len(result.Words)),
		slog.Bool("no_speech", result.Empty()),
		slog.Int("pages", doc.Pages),
		slog.Int("document_bytes", len(doc.Bytes)),
		slog.Duration("duration", duration),
	)

	return doc.Bytes, nil
}

// GetStats returns current pipeline statistics.
func (c *Coordinator) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	successRate := float64(0)
	if c.totalRequests > 0 {
		successRate = float64(c.successRequests) / float64(c.totalRequests) * 100
	}

	avgMs := float64(0)
	if c.successRequests > 0 {
		avgMs = float64(c.totalDuration.Milliseconds()) / float64(c.successRequests)
	}

	return Stats{
		TotalRequests:   c.totalRequests,
		SuccessRequests: c.successRequests,
		FailedRequests:  c.failedRequests,
		SuccessRate:     successRate,
		AvgDurationMs:   avgMs,
	}
}

func (c *Coordinator) recordSuccess(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalRequests++
	c.successRequests++
	c.totalDuration += duration
}

func (c *Coordinator) recordFailure(stage string) {
	c.metrics.RecordFailure(stage)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totalRequests++
	c.failedRequests++
}
