// Package pcm provides types and utilities for mono float32 PCM audio.
//
// Capture devices deliver audio as fixed-size Frames of float32 samples in
// [-1, 1] at a fixed sample rate described by a Format. Helpers convert
// between durations and sample counts, between float32 and 16-bit integer
// samples, and encode samples as a 16-bit WAV file for engines that expect
// one.
//
// Example usage:
//
//	format := pcm.F32Mono16K
//
//	// Samples needed for a 100ms frame
//	n := format.SamplesInDuration(100 * time.Millisecond)
//
//	// Encode a block for upload
//	var buf bytes.Buffer
//	err := pcm.EncodeWAV(&buf, format, block)
package pcm
