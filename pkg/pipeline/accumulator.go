package pipeline

import "slices"

// Accumulator collects samples and releases them in fixed-size blocks.
// It is not safe for concurrent use.
type Accumulator struct {
	samples []float32
}

// Append adds samples to the end.
func (a *Accumulator) Append(samples []float32) {
	a.samples = append(a.samples, samples...)
}

// Next removes and returns the first n samples if at least n are held.
// The returned block does not alias the accumulator.
func (a *Accumulator) Next(n int) ([]float32, bool) {
	if n <= 0 || len(a.samples) < n {
		return nil, false
	}
	block := slices.Clone(a.samples[:n])
	rest := copy(a.samples, a.samples[n:])
	a.samples = a.samples[:rest]
	return block, true
}

// Len returns the number of samples held.
func (a *Accumulator) Len() int {
	return len(a.samples)
}

// Reset discards all samples and returns how many were discarded.
func (a *Accumulator) Reset() int {
	n := len(a.samples)
	a.samples = a.samples[:0]
	return n
}
