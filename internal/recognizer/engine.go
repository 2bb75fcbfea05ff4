package recognizer

import "context"

// WordSpan is a recognized word with its timing and confidence.
type WordSpan struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"` // seconds from clip start
	End   float64 `json:"end"`
	Conf  float64 `json:"conf"`
}

// Result is a finalized transcript. Text is never "absent": silence or
// non-speech audio yields an empty string, which is a valid outcome rather
// than an error. When Words is populated, Text is the space-joined surface
// forms of the spans.
type Result struct {
	Text  string
	Words []WordSpan
}

// Empty reports whether no speech was recognized.
func (r Result) Empty() bool {
	return r.Text == ""
}

// Engine transcribes a mono sample buffer in one finalized batch pass.
// Implementations share an immutable model across calls but must create
// their own recognition session per call, so a single Engine value is safe
// for concurrent use.
type Engine interface {
	Transcribe(ctx context.Context, samples []int16, sampleRate int) (Result, error)

	// Close releases the loaded model. The engine must not be used afterwards.
	Close() error
}
