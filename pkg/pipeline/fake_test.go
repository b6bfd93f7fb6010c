package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/speech"
)

// fakeSource returns scripted frames and errors, then io.EOF. With block set,
// it waits for release instead of returning io.EOF.
type fakeSource struct {
	mu     sync.Mutex
	frames []pcm.Frame
	errs   map[int]error
	read   int
	block  chan struct{}
	closed bool
}

func newFakeSource(n, frameLen int, value float32) *fakeSource {
	s := &fakeSource{errs: make(map[int]error)}
	for i := range n {
		f := make(pcm.Frame, frameLen)
		for j := range f {
			f[j] = value
		}
		f[0] = float32(i)
		s.frames = append(s.frames, f)
	}
	return s
}

func (s *fakeSource) ReadFrame() (pcm.Frame, error) {
	s.mu.Lock()
	i := s.read
	s.read++
	if err, ok := s.errs[i]; ok {
		s.mu.Unlock()
		return nil, err
	}
	if len(s.frames) == 0 {
		block := s.block
		s.mu.Unlock()
		if block != nil {
			<-block
		}
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	s.mu.Unlock()
	return f, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeEngine records block sizes and fails on chosen calls (1-based).
type fakeEngine struct {
	mu      sync.Mutex
	calls   int
	sizes   []int
	failOn  map[int]bool
	gate    chan struct{}
	entered chan struct{}
}

func (e *fakeEngine) Transcribe(ctx context.Context, samples []float32, opts speech.Options) (string, error) {
	if e.entered != nil {
		e.entered <- struct{}{}
	}
	if e.gate != nil {
		<-e.gate
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.sizes = append(e.sizes, len(samples))
	if e.failOn[e.calls] {
		return "", errors.New("model exploded")
	}
	return fmt.Sprintf("block %d (%s)", e.calls, opts.Language), nil
}

func (e *fakeEngine) Close() error { return nil }

func (e *fakeEngine) blockSizes() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.sizes...)
}
