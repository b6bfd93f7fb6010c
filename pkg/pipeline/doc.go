// Package pipeline moves audio from an input device to a speech engine.
//
// Two goroutines cooperate through queues only:
//
//	Source ──► Capture ──► Frames (Queue) ──► Worker ──► Transcripts (Queue)
//	                 └────► Levels (Latest)
//
// Capture reads fixed-size frames, enqueues a copy of each, and publishes the
// frame loudness to a single-slot cell where a new level replaces any unread
// one. Worker accumulates frames, cuts them into fixed-duration blocks and
// transcribes each block in order. A consumer such as a UI loop drains
// Transcripts and takes Levels without blocking.
//
// Shutdown is cooperative: Stop cancels the pipeline context, which Capture
// checks between frame reads and Worker checks between blocks. An engine call
// already in flight runs to completion. Samples short of a full block are
// discarded.
package pipeline
