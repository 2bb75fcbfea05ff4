// Package recognizer defines the interface to offline speech-recognition
// engines and the typed transcript result they produce. Engine
// implementations live in subpackages (see vosk).
package recognizer
