package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/buffer"
	"github.com/haivivi/livescribe/pkg/speech"
)

func newTestWorker(engine speech.Engine, block time.Duration) *Worker {
	return &Worker{
		Engine:        engine,
		Frames:        buffer.NewQueue[pcm.Frame](0),
		Transcripts:   buffer.NewQueue[Transcript](0),
		Format:        pcm.Format{SampleRate: 1000},
		BlockDuration: block,
		Options:       speech.Options{Language: "en"},
		Stats:         new(Stats),
	}
}

func addFrames(t *testing.T, q *buffer.Queue[pcm.Frame], n, size int) {
	t.Helper()
	for range n {
		if err := q.Add(make(pcm.Frame, size)); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWorker_ErrorOnThirdBlock(t *testing.T) {
	engine := &fakeEngine{failOn: map[int]bool{3: true}}
	w := newTestWorker(engine, time.Second)

	addFrames(t, w.Frames, 50, 100) // 5 blocks of 1000 samples
	w.Frames.CloseWrite()
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := w.Transcripts.Drain(nil)
	if len(got) != 5 {
		t.Fatalf("got %d transcripts, want 5", len(got))
	}
	for i, tr := range got {
		if tr.Seq != i {
			t.Errorf("transcript %d has Seq %d", i, tr.Seq)
		}
		if tr.Offset != time.Duration(i)*time.Second {
			t.Errorf("transcript %d has Offset %v", i, tr.Offset)
		}
		if i == 2 {
			if tr.Err == nil || tr.String() != "Error: model exploded" {
				t.Errorf("transcript 2 = %q, want error line", tr.String())
			}
			continue
		}
		if tr.Err != nil || !strings.HasPrefix(tr.Text, "block ") {
			t.Errorf("transcript %d = %q, %v", i, tr.Text, tr.Err)
		}
	}
	if s := w.Stats.Snapshot(); s.Blocks != 5 || s.BlockErrors != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestWorker_ExactBlocks(t *testing.T) {
	engine := &fakeEngine{}
	w := newTestWorker(engine, time.Second)

	addFrames(t, w.Frames, 37, 70) // 2590 samples
	w.Frames.CloseWrite()
	w.Run(context.Background())

	sizes := engine.blockSizes()
	if len(sizes) != 2 {
		t.Fatalf("engine called %d times, want 2", len(sizes))
	}
	for _, n := range sizes {
		if n != 1000 {
			t.Fatalf("block size %d, want 1000", n)
		}
	}
	if s := w.Stats.Snapshot(); s.DiscardedSamples != 590 {
		t.Fatalf("DiscardedSamples = %d, want 590", s.DiscardedSamples)
	}
}

func TestWorker_WaitsForFrames(t *testing.T) {
	engine := &fakeEngine{}
	w := newTestWorker(engine, time.Second)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()

	for i := range 3 {
		addFrames(t, w.Frames, 10, 100)
		if err := w.Transcripts.Wait(context.Background()); err != nil {
			t.Fatalf("block %d: Wait() error: %v", i, err)
		}
		got := w.Transcripts.Drain(nil)
		if len(got) != 1 || got[0].Seq != i {
			t.Fatalf("block %d: transcripts = %+v", i, got)
		}
	}
	w.Frames.CloseWrite()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after the frame queue closed")
	}
}

func TestWorker_ShutdownDiscardsPartialBlock(t *testing.T) {
	engine := &fakeEngine{}
	w := newTestWorker(engine, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	addFrames(t, w.Frames, 5, 100) // half a block
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not observe cancellation")
	}
	if n := len(engine.blockSizes()); n != 0 {
		t.Fatalf("engine called %d times, want 0", n)
	}
	if w.Transcripts.Len() != 0 {
		t.Fatal("partial block produced a transcript")
	}
	if s := w.Stats.Snapshot(); s.DiscardedSamples != 500 {
		t.Fatalf("DiscardedSamples = %d, want 500", s.DiscardedSamples)
	}
}

func TestWorker_InFlightCallCompletes(t *testing.T) {
	engine := &fakeEngine{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	w := newTestWorker(engine, time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	addFrames(t, w.Frames, 20, 100) // two blocks
	<-engine.entered
	cancel()
	close(engine.gate)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not exit")
	}
	got := w.Transcripts.Drain(nil)
	if len(got) != 1 || got[0].Err != nil {
		t.Fatalf("transcripts = %+v, want the in-flight block only", got)
	}
}

func TestTranscript_Format(t *testing.T) {
	tr := Transcript{Seq: 25, Offset: 125 * time.Second, Text: "hi"}
	if tr.Timestamp() != "02:05" {
		t.Errorf("Timestamp() = %q", tr.Timestamp())
	}
	if tr.String() != "hi" {
		t.Errorf("String() = %q", tr.String())
	}
}
