package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// riffHeader represents the fixed 12-byte preamble of a RIFF/WAVE file
type riffHeader struct {
	ChunkID   [4]byte // "RIFF"
	ChunkSize uint32  // File size - 8 bytes
	Format    [4]byte // "WAVE"
}

// fmtChunk represents the PCM portion of the "fmt " chunk
type fmtChunk struct {
	AudioFormat   uint16 // 1 for PCM
	NumChannels   uint16 // Number of channels
	SampleRate    uint32 // Sample rate
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16 // Bits per sample
}

const (
	formatPCM     = 1
	minHeaderSize = 12 // RIFF preamble alone; chunks follow
)

// Decode parses a RIFF/WAVE container into a Clip. Only linear PCM with
// 16 or 32 bits per sample is accepted. Chunks other than "fmt " and "data"
// (LIST, fact, cue, ...) are skipped.
func Decode(data []byte) (*Clip, error) {
	if len(data) < minHeaderSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", minHeaderSize, len(data))
	}

	buf := bytes.NewReader(data)
	var header riffHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read RIFF header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}

	if string(header.Format[:]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	var format *fmtChunk
	var pcmData []byte

	// Walk chunks until both "fmt " and "data" are found
	for buf.Len() >= 8 {
		var chunkID [4]byte
		var chunkSize uint32
		if err := binary.Read(buf, binary.LittleEndian, &chunkID); err != nil {
			return nil, fmt.Errorf("failed to read chunk id: %w", err)
		}
		if err := binary.Read(buf, binary.LittleEndian, &chunkSize); err != nil {
			return nil, fmt.Errorf("failed to read chunk size: %w", err)
		}

		if int(chunkSize) > buf.Len() {
			chunkSize = uint32(buf.Len()) // tolerate truncated final chunk size fields
		}

		body := make([]byte, chunkSize)
		if _, err := buf.Read(body); err != nil {
			return nil, fmt.Errorf("failed to read %q chunk: %w", string(chunkID[:]), err)
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if len(body) < 16 {
				return nil, fmt.Errorf("invalid fmt chunk: need 16 bytes, got %d", len(body))
			}
			var fc fmtChunk
			if err := binary.Read(bytes.NewReader(body[:16]), binary.LittleEndian, &fc); err != nil {
				return nil, fmt.Errorf("failed to parse fmt chunk: %w", err)
			}
			format = &fc
		case "data":
			pcmData = body
		}

		// Chunks are word-aligned; an odd-sized chunk carries a pad byte
		if chunkSize%2 == 1 && buf.Len() > 0 {
			if _, err := buf.ReadByte(); err != nil {
				return nil, fmt.Errorf("failed to skip chunk padding: %w", err)
			}
		}

		if format != nil && pcmData != nil {
			break
		}
	}

	if format == nil {
		return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}

	if pcmData == nil {
		return nil, fmt.Errorf("invalid WAV file: missing data chunk")
	}

	if format.AudioFormat != formatPCM {
		return nil, fmt.Errorf("unsupported audio format: %d (only linear PCM is supported)", format.AudioFormat)
	}

	if format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid channel count: %d", format.NumChannels)
	}

	if format.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}

	channels := int(format.NumChannels)

	var samples []int16
	switch format.BitsPerSample {
	case 16:
		count := len(pcmData) / 2
		count -= count % channels // drop a trailing partial frame
		samples = make([]int16, count)
		for i := 0; i < count; i++ {
			samples[i] = int16(binary.LittleEndian.Uint16(pcmData[i*2:]))
		}
	case 32:
		count := len(pcmData) / 4
		count -= count % channels
		samples = make([]int16, count)
		for i := 0; i < count; i++ {
			// Narrow 32-bit PCM to the 16-bit range the recognizer consumes
			samples[i] = int16(int32(binary.LittleEndian.Uint32(pcmData[i*4:])) >> 16)
		}
	default:
		return nil, fmt.Errorf("unsupported bit depth: %d (only 16-bit and 32-bit PCM are supported)", format.BitsPerSample)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data found")
	}

	return &Clip{
		Samples:    samples,
		SampleRate: int(format.SampleRate),
		Channels:   channels,
	}, nil
}

// Encode serializes interleaved PCM-16 samples into a WAV byte stream.
// Used by the client tool and test fixtures.
func Encode(samples []int16, sampleRate, channels int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("cannot encode empty audio samples")
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("channel count must be at least 1, got %d", channels)
	}

	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("sample count %d is not a multiple of channel count %d", len(samples), channels)
	}

	bitsPerSample := uint16(16)
	numChannels := uint16(channels)
	dataSize := uint32(len(samples) * 2) // 2 bytes per sample

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(samples)*2))

	header := riffHeader{
		ChunkID:   [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize: 36 + dataSize,
		Format:    [4]byte{'W', 'A', 'V', 'E'},
	}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write RIFF header: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, [4]byte{'f', 'm', 't', ' '}); err != nil {
		return nil, fmt.Errorf("failed to write fmt chunk id: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(16)); err != nil {
		return nil, fmt.Errorf("failed to write fmt chunk size: %w", err)
	}
	fc := fmtChunk{
		AudioFormat:   formatPCM,
		NumChannels:   numChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
	}
	if err := binary.Write(buf, binary.LittleEndian, fc); err != nil {
		return nil, fmt.Errorf("failed to write fmt chunk: %w", err)
	}

	if err := binary.Write(buf, binary.LittleEndian, [4]byte{'d', 'a', 't', 'a'}); err != nil {
		return nil, fmt.Errorf("failed to write data chunk id: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, dataSize); err != nil {
		return nil, fmt.Errorf("failed to write data chunk size: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, samples); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	return buf.Bytes(), nil
}
