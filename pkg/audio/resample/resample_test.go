package resample

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

type frameReader struct {
	frames []pcm.Frame
	errs   map[int]error
	reads  int
	closed bool
}

func (r *frameReader) ReadFrame() (pcm.Frame, error) {
	i := r.reads
	r.reads++
	if i >= len(r.frames) {
		return nil, io.EOF
	}
	return r.frames[i], r.errs[i]
}

func (r *frameReader) Close() error {
	r.closed = true
	return nil
}

func sineFrames(rate, n, frameLen int) []pcm.Frame {
	frames := make([]pcm.Frame, n)
	t := 0
	for i := range frames {
		f := make(pcm.Frame, frameLen)
		for j := range f {
			f[j] = float32(0.5 * math.Sin(2*math.Pi*440*float64(t)/float64(rate)))
			t++
		}
		frames[i] = f
	}
	return frames
}

func TestSource_Passthrough(t *testing.T) {
	frames := sineFrames(16000, 3, 1600)
	src := &frameReader{frames: frames}
	s, err := NewSource(src, pcm.F32Mono16K, pcm.F32Mono16K)
	if err != nil {
		t.Fatalf("NewSource() error: %v", err)
	}
	for i := range frames {
		got, err := s.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame(%d) error: %v", i, err)
		}
		if len(got) != 1600 || got[10] != frames[i][10] {
			t.Fatalf("frame %d changed in passthrough", i)
		}
	}
	if _, err := s.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame() at end = %v, want io.EOF", err)
	}
}

func TestSource_Downsample(t *testing.T) {
	const frames = 30
	src := &frameReader{frames: sineFrames(48000, frames, 4800)}
	s, err := NewSource(src, pcm.Format{SampleRate: 48000}, pcm.F32Mono16K)
	if err != nil {
		t.Fatalf("NewSource() error: %v", err)
	}
	if s.Format() != pcm.F32Mono16K {
		t.Errorf("Format() = %v", s.Format())
	}

	total := 0
	for {
		f, err := s.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrame() error: %v", err)
		}
		if len(f) == 0 {
			t.Fatal("ReadFrame() returned an empty frame")
		}
		for _, v := range f {
			if v > 1 || v < -1 {
				t.Fatalf("sample %v out of range", v)
			}
		}
		total += len(f)
	}

	want := frames * 1600
	if total < want*8/10 || total > want+1600 {
		t.Errorf("total samples = %d, want about %d", total, want)
	}
}

func TestSource_PassesFrameErrors(t *testing.T) {
	overflow := errors.New("input overflowed")
	src := &frameReader{
		frames: sineFrames(16000, 2, 1600),
		errs:   map[int]error{0: overflow},
	}
	s, err := NewSource(src, pcm.F32Mono16K, pcm.F32Mono16K)
	if err != nil {
		t.Fatalf("NewSource() error: %v", err)
	}
	f, err := s.ReadFrame()
	if !errors.Is(err, overflow) || len(f) != 1600 {
		t.Errorf("ReadFrame() = (%d samples, %v), want frame with overflow error", len(f), err)
	}
}

func TestSource_Close(t *testing.T) {
	src := &frameReader{frames: sineFrames(48000, 5, 4800)}
	s, err := NewSource(src, pcm.Format{SampleRate: 48000}, pcm.F32Mono16K)
	if err != nil {
		t.Fatalf("NewSource() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !src.closed {
		t.Error("underlying reader not closed")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if _, err := s.ReadFrame(); err != io.EOF {
		t.Errorf("ReadFrame() after Close = %v, want io.EOF", err)
	}
}

func TestNewSource_InvalidFormat(t *testing.T) {
	if _, err := NewSource(&frameReader{}, pcm.Format{}, pcm.F32Mono16K); err == nil {
		t.Error("NewSource() with zero rate: want error")
	}
}
