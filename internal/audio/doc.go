// Package audio handles WAV container decoding/encoding and channel mixdown.
// It parses linear PCM (16-bit and 32-bit) RIFF/WAVE data into sample buffers
// and mixes multi-channel audio down to mono for recognition.
package audio
