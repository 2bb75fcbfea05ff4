package audio

import "encoding/binary"

// Clip represents decoded PCM audio as delivered by the container:
// interleaved 16-bit samples with the declared sample rate and channel count.
type Clip struct {
	Samples    []int16 // interleaved, one value per (frame, channel)
	SampleRate int
	Channels   int
}

// Frames returns the number of complete frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.SampleRate)
}

// SampleBuffer is a mono sample sequence ready for recognition.
type SampleBuffer struct {
	Samples    []int16
	SampleRate int
}

// Downmix mixes the clip down to mono by taking the arithmetic mean of the
// channel values at each frame. The sample rate is passed through unchanged;
// no resampling is performed. Frames with identical channel values reproduce
// that value exactly, and the result does not depend on channel order.
func (c *Clip) Downmix() *SampleBuffer {
	if c.Channels == 1 {
		mono := make([]int16, len(c.Samples))
		copy(mono, c.Samples)
		return &SampleBuffer{Samples: mono, SampleRate: c.SampleRate}
	}

	frames := c.Frames()
	mono := make([]int16, frames)
	n := int64(c.Channels)

	for f := 0; f < frames; f++ {
		var sum int64
		base := f * c.Channels
		for ch := 0; ch < c.Channels; ch++ {
			sum += int64(c.Samples[base+ch])
		}
		// Round half away from zero so the mean of equal values is exact
		if sum >= 0 {
			mono[f] = int16((sum + n/2) / n)
		} else {
			mono[f] = int16((sum - n/2) / n)
		}
	}

	return &SampleBuffer{Samples: mono, SampleRate: c.SampleRate}
}

// Duration returns the buffer length in seconds.
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// PCMBytes serializes samples as little-endian signed 16-bit PCM, the byte
// layout recognition engines consume.
func PCMBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
