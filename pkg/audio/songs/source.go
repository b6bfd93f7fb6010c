package songs

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

// SourceOptions configures a Source.
type SourceOptions struct {
	Format        pcm.Format    // Sample format (default: pcm.F32Mono16K)
	FrameDuration time.Duration // Length of each frame (default: 100ms)
	Volume        float64       // Mix volume 0..1 (default: 0.5)
	Loop          bool          // Restart the song when it ends
	// Realtime paces ReadFrame to the audio clock, like a capture device.
	// When false, frames are returned as fast as they are read.
	Realtime bool
}

// Source plays a song as a stream of fixed-size frames.
type Source struct {
	samples []float32
	frame   int
	loop    bool
	pace    time.Duration

	mu     sync.Mutex
	pos    int
	next   time.Time
	closed bool
}

// NewSource renders song and returns a Source that replays it.
func NewSource(song Song, opts SourceOptions) (*Source, error) {
	if opts.Format.SampleRate == 0 {
		opts.Format = pcm.F32Mono16K
	}
	if opts.FrameDuration <= 0 {
		opts.FrameDuration = 100 * time.Millisecond
	}
	if opts.Volume == 0 {
		opts.Volume = 0.5
	}
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	frame := opts.Format.SamplesInDuration(opts.FrameDuration)
	if frame <= 0 {
		return nil, fmt.Errorf("songs: frame duration %v is shorter than one sample", opts.FrameDuration)
	}

	samples := song.Render(opts.Format.SampleRate, opts.Volume)
	if len(samples) == 0 {
		return nil, errors.New("songs: song renders to no audio")
	}

	s := &Source{
		samples: samples,
		frame:   frame,
		loop:    opts.Loop,
	}
	if opts.Realtime {
		s.pace = opts.FrameDuration
	}
	return s, nil
}

// ReadFrame returns the next frame of the song. A trailing partial frame is
// padded with silence. After the song ends, ReadFrame returns io.EOF unless
// the source loops.
func (s *Source) ReadFrame() (pcm.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, io.EOF
	}
	if s.pos >= len(s.samples) {
		if !s.loop {
			return nil, io.EOF
		}
		s.pos = 0
	}

	if s.pace > 0 {
		now := time.Now()
		if s.next.IsZero() {
			s.next = now
		}
		if wait := s.next.Sub(now); wait > 0 {
			time.Sleep(wait)
		}
		s.next = s.next.Add(s.pace)
	}

	out := make(pcm.Frame, s.frame)
	n := copy(out, s.samples[s.pos:])
	s.pos += n
	return out, nil
}

// Close stops the source; subsequent reads return io.EOF.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
