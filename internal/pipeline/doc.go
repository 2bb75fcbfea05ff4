// Package pipeline sequences audio normalization, recognition and document
// rendering into the single bytes-in, bytes-out transcription contract.
// The first stage failure aborts the run; no partial document is ever
// returned and no stage is retried.
package pipeline
