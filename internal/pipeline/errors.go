package pipeline

// DecodeError reports a malformed or unsupported audio container. It is a
// caller error: the request is rejected and never retried.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "audio decode failed: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RecognitionError reports an engine failure: unavailable model, rejected
// sample rate or an engine-internal fault. Fatal for the request; recognition
// is deterministic for identical input, so a retry has no value.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return "recognition failed: " + e.Err.Error()
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// RenderError reports a document serialization failure. Text content can
// never cause one; only catastrophic layout or output errors do.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "document render failed: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
