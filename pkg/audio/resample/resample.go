// Package resample converts captured mono float32 frames from a device's
// native sample rate to the rate the speech engine expects.
//
// Devices that only open at 44.1 or 48 kHz are wrapped in a Source; the
// pipeline downstream sees frames at the target rate and never learns the
// device rate. Conversion uses a pure Go polyphase resampler, so no extra
// C library is needed next to PortAudio.
package resample

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

// FrameReader is a frame producer such as a PortAudio input stream.
type FrameReader interface {
	ReadFrame() (pcm.Frame, error)
	Close() error
}

// Source reads frames from src at srcFmt and returns them at dstFmt.
//
// Output frames are not a fixed length: the resampler holds back a few
// samples of filter delay, so a frame may be slightly shorter or longer
// than the source frame scaled by the rate ratio.
type Source struct {
	src    FrameReader
	srcFmt pcm.Format
	dstFmt pcm.Format
	closed atomic.Bool

	mu        sync.Mutex
	resampler resampling.Resampler
	in        []float64
}

// NewSource wraps src. When the two formats share a sample rate frames pass
// through untouched.
func NewSource(src FrameReader, srcFmt, dstFmt pcm.Format) (*Source, error) {
	if err := srcFmt.Validate(); err != nil {
		return nil, err
	}
	if err := dstFmt.Validate(); err != nil {
		return nil, err
	}
	s := &Source{src: src, srcFmt: srcFmt, dstFmt: dstFmt}
	if !s.converts() {
		return s, nil
	}
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(srcFmt.SampleRate),
		OutputRate: float64(dstFmt.SampleRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resample: %d -> %d Hz: %w", srcFmt.SampleRate, dstFmt.SampleRate, err)
	}
	s.resampler = r
	return s, nil
}

func (s *Source) converts() bool {
	return s.srcFmt.SampleRate != s.dstFmt.SampleRate
}

// ReadFrame returns the next non-empty frame at the target rate. An error
// returned together with a source frame (such as an input overflow) is
// passed through with the converted frame. After Close it returns io.EOF.
func (s *Source) ReadFrame() (pcm.Frame, error) {
	for {
		if s.closed.Load() {
			return nil, io.EOF
		}
		frame, err := s.src.ReadFrame()
		if len(frame) == 0 {
			if err == nil {
				continue
			}
			return nil, err
		}
		if !s.converts() {
			return frame, err
		}

		out, perr := s.process(frame)
		if perr != nil {
			return nil, perr
		}
		if len(out) == 0 {
			if err != nil {
				return nil, err
			}
			continue
		}
		return out, err
	}
}

func (s *Source) process(frame pcm.Frame) (pcm.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resampler == nil {
		return nil, io.EOF
	}

	s.in = s.in[:0]
	for _, v := range frame {
		s.in = append(s.in, float64(v))
	}
	output, err := s.resampler.Process(s.in)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}
	out := make(pcm.Frame, len(output))
	for i, v := range output {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		out[i] = float32(v)
	}
	return out, nil
}

// Format returns the output format.
func (s *Source) Format() pcm.Format {
	return s.dstFmt
}

// Close closes the underlying reader and releases the resampler.
func (s *Source) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.mu.Lock()
	s.resampler = nil
	s.mu.Unlock()
	return s.src.Close()
}
