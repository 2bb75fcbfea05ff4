// Package config provides configuration loading and validation for the
// voice-to-PDF transcription service. It handles YAML-based configuration
// with struct validation covering the HTTP server, upload limits, the
// recognizer model and the document page geometry.
package config
