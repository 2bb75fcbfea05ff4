package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Prakashdeveloper01/Audio-file/internal/audio"
	"github.com/Prakashdeveloper01/Audio-file/internal/document"
	"github.com/Prakashdeveloper01/Audio-file/internal/metrics"
	"github.com/Prakashdeveloper01/Audio-file/internal/recognizer"
)

// fakeEngine is a recognizer stub that records what it was fed and returns a
// canned result.
type fakeEngine struct {
	result recognizer.Result
	err    error

	calls      int
	gotSamples []int16
	gotRate    int
}

func (f *fakeEngine) Transcribe(ctx context.Context, samples []int16, sampleRate int) (recognizer.Result, error) {
	f.calls++
	f.gotSamples = samples
	f.gotRate = sampleRate
	if f.err != nil {
		return recognizer.Result{}, f.err
	}
	return f.result, nil
}

func (f *fakeEngine) Close() error { return nil }

// Prometheus collectors register globally, so the test binary shares one set.
var (
	testMetrics     *metrics.Metrics
	testMetricsOnce sync.Once
)

func sharedMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics()
	})
	return testMetrics
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRenderer() *document.Renderer {
	return document.NewRenderer(document.DefaultLayout(), "")
}

func newTestCoordinator(engine recognizer.Engine) *Coordinator {
	return NewCoordinator(engine, testRenderer(), testLogger(), sharedMetrics())
}

// silentWAV returns an encoded mono clip of all-zero samples.
func silentWAV(t *testing.T, sampleRate int, seconds float64) []byte {
	t.Helper()
	samples := make([]int16, int(float64(sampleRate)*seconds))
	data, err := audio.Encode(samples, sampleRate, 1)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return data
}

func TestProcessSilentClip(t *testing.T) {
	// A silent clip recognizes to empty text, which still yields a complete
	// single-page placeholder document.
	engine := &fakeEngine{result: recognizer.Result{Text: ""}}
	c := newTestCoordinator(engine)

	pdfBytes, err := c.Process(context.Background(), silentWAV(t, 16000, 1.0))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if engine.calls != 1 {
		t.Errorf("Expected 1 engine call, got %d", engine.calls)
	}

	if engine.gotRate != 16000 {
		t.Errorf("Expected sample rate 16000 passed through, got %d", engine.gotRate)
	}

	if len(engine.gotSamples) != 16000 {
		t.Errorf("Expected 16000 mono samples, got %d", len(engine.gotSamples))
	}

	expected, err := testRenderer().Render("")
	if err != nil {
		t.Fatalf("Reference render failed: %v", err)
	}

	if !bytes.Equal(pdfBytes, expected.Bytes) {
		t.Error("Silent clip must produce the placeholder document")
	}
}

func TestProcessSpeech(t *testing.T) {
	engine := &fakeEngine{result: recognizer.Result{
		Text: "hello world",
		Words: []recognizer.WordSpan{
			{Word: "hello", Start: 0.1, End: 0.5, Conf: 0.97},
			{Word: "world", Start: 0.6, End: 1.0, Conf: 0.93},
		},
	}}
	c := newTestCoordinator(engine)

	pdfBytes, err := c.Process(context.Background(), silentWAV(t, 16000, 1.0))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	expected, err := testRenderer().Render("hello world")
	if err != nil {
		t.Fatalf("Reference render failed: %v", err)
	}

	if !bytes.Equal(pdfBytes, expected.Bytes) {
		t.Error("Document must contain exactly the rendered transcript")
	}
}

func TestProcessStereoMixdown(t *testing.T) {
	// Stereo input with identical channels reaches the engine as mono with
	// the channel's own values.
	frames := 100
	samples := make([]int16, frames*2)
	for f := 0; f < frames; f++ {
		samples[f*2] = int16(f * 10)
		samples[f*2+1] = int16(f * 10)
	}

	wavData, err := audio.Encode(samples, 44100, 2)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	engine := &fakeEngine{result: recognizer.Result{Text: ""}}
	c := newTestCoordinator(engine)

	if _, err := c.Process(context.Background(), wavData); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if engine.gotRate != 44100 {
		t.Errorf("Expected sample rate 44100 passed through, got %d", engine.gotRate)
	}

	if len(engine.gotSamples) != frames {
		t.Fatalf("Expected %d mono frames, got %d", frames, len(engine.gotSamples))
	}

	for f := 0; f < frames; f++ {
		if engine.gotSamples[f] != int16(f*10) {
			t.Fatalf("Frame %d: expected %d, got %d", f, f*10, engine.gotSamples[f])
		}
	}
}

func TestProcessMalformedInput(t *testing.T) {
	engine := &fakeEngine{result: recognizer.Result{Text: "never"}}
	c := newTestCoordinator(engine)

	pdfBytes, err := c.Process(context.Background(), []byte("this is not audio"))
	if err == nil {
		t.Fatal("Expected a decode error")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected *DecodeError, got %T: %v", err, err)
	}

	if pdfBytes != nil {
		t.Error("No document may be produced on decode failure")
	}

	if engine.calls != 0 {
		t.Error("Engine must not run when decoding fails")
	}
}

func TestProcessRecognitionFailure(t *testing.T) {
	cause := errors.New("model rejected sample rate")
	engine := &fakeEngine{err: cause}
	c := newTestCoordinator(engine)

	pdfBytes, err := c.Process(context.Background(), silentWAV(t, 16000, 0.5))
	if err == nil {
		t.Fatal("Expected a recognition error")
	}

	var recErr *RecognitionError
	if !errors.As(err, &recErr) {
		t.Errorf("Expected *RecognitionError, got %T: %v", err, err)
	}

	if !errors.Is(err, cause) {
		t.Error("Recognition error must wrap the engine's failure")
	}

	if pdfBytes != nil {
		t.Error("No document may be produced on recognition failure")
	}
}

func TestStats(t *testing.T) {
	engine := &fakeEngine{result: recognizer.Result{Text: "ok"}}
	c := newTestCoordinator(engine)

	if _, err := c.Process(context.Background(), silentWAV(t, 8000, 0.1)); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if _, err := c.Process(context.Background(), []byte("garbage")); err == nil {
		t.Fatal("Expected decode failure")
	}

	stats := c.GetStats()

	if stats.TotalRequests != 2 {
		t.Errorf("Expected 2 total requests, got %d", stats.TotalRequests)
	}

	if stats.SuccessRequests != 1 {
		t.Errorf("Expected 1 success, got %d", stats.SuccessRequests)
	}

	if stats.FailedRequests != 1 {
		t.Errorf("Expected 1 failure, got %d", stats.FailedRequests)
	}

	if stats.SuccessRate != 50 {
		t.Errorf("Expected 50%% success rate, got %f", stats.SuccessRate)
	}
}
