// Package audio groups the audio input packages used by livescribe:
//
//   - pcm: mono float32 format, frames, sample conversion and WAV encoding
//   - portaudio: microphone capture through the PortAudio C library
//   - resample: conversion from a device's native rate to the engine rate
//   - songs: synthesised melodies that stand in for a microphone
//
// Example usage:
//
//	import (
//	    "github.com/haivivi/livescribe/pkg/audio/pcm"
//	    "github.com/haivivi/livescribe/pkg/audio/portaudio"
//	)
//
//	portaudio.Initialize()
//	defer portaudio.Terminate()
//	stream, err := portaudio.NewInputStream(portaudio.DefaultDevice, pcm.F32Mono16K, 100*time.Millisecond)
package audio
