// Package server implements the HTTP transport around the transcription
// pipeline: the audio upload endpoint that answers with a PDF attachment,
// the browser recorder page, and monitoring/management endpoints.
package server
