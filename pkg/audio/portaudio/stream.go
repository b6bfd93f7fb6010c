package portaudio

import (
	"io"
	"sync"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

// InputStream captures mono float32 audio from an input device.
type InputStream struct {
	stream *stream
	format pcm.Format
	mu     sync.Mutex
	closed bool
}

// NewInputStream opens and starts a mono capture stream.
// device: device index, or DefaultDevice
// format: sample format (e.g., pcm.F32Mono16K)
// frameDuration: duration of each read frame (e.g., 100ms)
func NewInputStream(device int, format pcm.Format, frameDuration time.Duration) (*InputStream, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	framesPerBuffer := format.SamplesInDuration(frameDuration)

	s, err := openInput(device, format.Channels(), float64(format.SampleRate), framesPerBuffer)
	if err != nil {
		return nil, err
	}

	if err := s.start(); err != nil {
		s.close()
		return nil, err
	}

	return &InputStream{
		stream: s,
		format: format,
	}, nil
}

// ReadFrame blocks until the next frame is captured and returns it.
// An ErrInputOverflowed error is returned together with the frame that was
// read; callers may log it and keep going.
func (is *InputStream) ReadFrame() (pcm.Frame, error) {
	is.mu.Lock()
	closed := is.closed
	is.mu.Unlock()
	if closed {
		return nil, io.EOF
	}

	samples, err := is.stream.read()
	if samples == nil {
		return nil, err
	}
	return pcm.Frame(samples), err
}

// Format returns the PCM format.
func (is *InputStream) Format() pcm.Format {
	return is.format
}

// Close stops and closes the stream.
func (is *InputStream) Close() error {
	is.mu.Lock()
	defer is.mu.Unlock()

	if is.closed {
		return nil
	}
	is.closed = true

	return is.stream.close()
}
