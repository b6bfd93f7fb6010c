package pcm

import (
	"fmt"
	"time"
)

// F32Mono16K is mono float32 audio at 16 kHz, the rate speech engines expect.
var F32Mono16K = Format{SampleRate: 16000}

// Format describes mono float32 audio at a fixed sample rate.
type Format struct {
	SampleRate int
}

// Validate reports whether the format is usable.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("pcm: sample rate must be positive, got %d", f.SampleRate)
	}
	return nil
}

// Channels returns the number of audio channels. Always 1.
func (f Format) Channels() int { return 1 }

// SamplesInDuration returns the number of samples in the given duration.
func (f Format) SamplesInDuration(d time.Duration) int {
	return int(time.Duration(f.SampleRate) * d / time.Second)
}

// Duration returns the duration spanned by n samples.
func (f Format) Duration(n int) time.Duration {
	if f.SampleRate == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(f.SampleRate)
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	return fmt.Sprintf("audio/f32; rate=%d; channels=1", f.SampleRate)
}

// Frame is one chunk of mono float32 samples as delivered by a capture
// device. Frames are treated as immutable once captured.
type Frame []float32

// Clone returns a copy of f that does not alias the original backing array.
func (f Frame) Clone() Frame {
	if f == nil {
		return nil
	}
	c := make(Frame, len(f))
	copy(c, f)
	return c
}

// Int16ToFloat32 converts 16-bit integer samples to float32 in [-1, 1).
func Int16ToFloat32(dst []float32, src []int16) []float32 {
	for _, s := range src {
		dst = append(dst, float32(s)/32768)
	}
	return dst
}

// Float32ToInt16 converts float32 samples to 16-bit integers, clipping values
// outside [-1, 1].
func Float32ToInt16(dst []int16, src []float32) []int16 {
	for _, s := range src {
		switch {
		case s >= 1:
			dst = append(dst, 32767)
		case s <= -1:
			dst = append(dst, -32768)
		default:
			dst = append(dst, int16(s*32767))
		}
	}
	return dst
}
