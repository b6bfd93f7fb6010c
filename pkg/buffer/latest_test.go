package buffer

import (
	"sync"
	"testing"
)

func TestLatest_Empty(t *testing.T) {
	var l Latest[float64]
	if v, ok := l.Take(); ok || v != 0 {
		t.Fatalf("Take() on empty = (%v, %v), want (0, false)", v, ok)
	}
}

func TestLatest_SecondPutWins(t *testing.T) {
	var l Latest[float64]
	if l.Put(0.25) {
		t.Fatal("first Put reported a discard")
	}
	if !l.Put(0.75) {
		t.Fatal("second Put did not report a discard")
	}

	v, ok := l.Take()
	if !ok || v != 0.75 {
		t.Fatalf("Take() = (%v, %v), want (0.75, true)", v, ok)
	}
	if _, ok := l.Take(); ok {
		t.Fatal("second Take() returned a value; cell must hold at most one")
	}
}

func TestLatest_PutAfterTake(t *testing.T) {
	var l Latest[string]
	l.Put("a")
	l.Take()
	if l.Put("b") {
		t.Fatal("Put after Take reported a discard")
	}
	if v, _ := l.Take(); v != "b" {
		t.Fatalf("Take() = %q, want b", v)
	}
}

func TestLatest_Concurrent(t *testing.T) {
	var l Latest[int]
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			l.Put(i)
		}
	}()

	last := 0
	for {
		v, ok := l.Take()
		if ok {
			if v <= last {
				t.Fatalf("Take() = %d after %d; values must be increasing", v, last)
			}
			last = v
		}
		if last == 1000 {
			break
		}
	}
	wg.Wait()
}
