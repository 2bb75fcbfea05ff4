// Package vosk implements the recognizer engine on top of the Vosk offline
// speech-recognition library. The acoustic model is loaded once and shared
// read-only; every Transcribe call runs in its own recognizer session.
package vosk

import (
	"context"
	"fmt"

	vosk "github.com/alphacep/vosk-api/go"

	"github.com/Prakashdeveloper01/Audio-file/internal/audio"
	"github.com/Prakashdeveloper01/Audio-file/internal/recognizer"
)

// Engine wraps a loaded Vosk model. Safe for concurrent use: the model is
// immutable after load and each call creates a private recognizer session.
type Engine struct {
	model     *vosk.VoskModel
	modelPath string
}

// New loads the Vosk model from modelPath. A missing or unreadable model is
// an unrecoverable startup condition for the process, not a per-request one.
func New(modelPath string) (*Engine, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty")
	}

	model, err := vosk.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load vosk model from %s: %w", modelPath, err)
	}

	return &Engine{model: model, modelPath: modelPath}, nil
}

// SetLogLevel adjusts Vosk's native log verbosity (negative values silence it).
func SetLogLevel(level int) {
	vosk.SetLogLevel(level)
}

// ModelPath returns the path the model was loaded from.
func (e *Engine) ModelPath() string {
	return e.modelPath
}

// Transcribe feeds the full buffer to a fresh recognizer session as one
// finalized pass and extracts the best hypothesis with word-level metadata.
// No speech in the audio yields an empty-text result, not an error.
func (e *Engine) Transcribe(ctx context.Context, samples []int16, sampleRate int) (recognizer.Result, error) {
	if err := ctx.Err(); err != nil {
		return recognizer.Result{}, err
	}

	if sampleRate <= 0 {
		return recognizer.Result{}, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	rec, err := vosk.NewRecognizer(e.model, float64(sampleRate))
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("failed to create recognizer session at %d Hz: %w", sampleRate, err)
	}
	defer rec.Free()

	rec.SetWords(1)
	rec.AcceptWaveform(audio.PCMBytes(samples))

	result, err := recognizer.ParseResult([]byte(rec.FinalResult()))
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("failed to extract final result: %w", err)
	}

	return result, nil
}

// Close releases the loaded model.
func (e *Engine) Close() error {
	if e.model != nil {
		e.model.Free()
		e.model = nil
	}
	return nil
}
