// Package portaudio provides Go bindings for capturing audio with the
// PortAudio library.
//
// This package uses CGO to interface with the PortAudio C library. Input is
// opened as mono (or multi-channel) 32-bit float, read in fixed-size frames
// with blocking reads.
//
// For go build: requires portaudio installed via pkg-config (brew install portaudio,
// apt install portaudio19-dev)
package portaudio

/*
#cgo pkg-config: portaudio-2.0

#include <portaudio.h>
#include <stdlib.h>
#include <string.h>

// Wrapper functions using void* to avoid CGO type issues with PaStream
static PaError pa_open_stream(void **stream,
                              const PaStreamParameters *inputParams,
                              double sampleRate,
                              unsigned long framesPerBuffer,
                              PaStreamFlags streamFlags) {
    return Pa_OpenStream((PaStream**)stream, inputParams, NULL, sampleRate,
                         framesPerBuffer, streamFlags, NULL, NULL);
}

static PaError pa_start_stream(void *stream) {
    return Pa_StartStream((PaStream*)stream);
}

static PaError pa_stop_stream(void *stream) {
    return Pa_StopStream((PaStream*)stream);
}

static PaError pa_close_stream(void *stream) {
    return Pa_CloseStream((PaStream*)stream);
}

static PaError pa_read_stream(void *stream, void *buffer, unsigned long frames) {
    return Pa_ReadStream((PaStream*)stream, buffer, frames);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// DefaultDevice selects the host's default input device.
const DefaultDevice = -1

// ErrInputOverflowed is returned by Read when the device delivered more audio
// than was read in time. The returned samples are still valid; earlier audio
// was lost inside PortAudio.
var ErrInputOverflowed = errors.New("portaudio: input overflowed")

var (
	initOnce sync.Once
	initErr  error
)

// paError converts a PortAudio error code to a Go error.
func paError(code C.PaError) error {
	if code == C.paNoError {
		return nil
	}
	if code == C.paInputOverflowed {
		return ErrInputOverflowed
	}
	return errors.New(C.GoString(C.Pa_GetErrorText(code)))
}

// Initialize initializes the PortAudio library.
// It is safe to call multiple times.
func Initialize() error {
	initOnce.Do(func() {
		initErr = paError(C.Pa_Initialize())
	})
	return initErr
}

// Terminate terminates the PortAudio library.
func Terminate() error {
	return paError(C.Pa_Terminate())
}

// DeviceInfo contains information about an audio input device.
type DeviceInfo struct {
	Index                   int
	Name                    string
	MaxInputChannels        int
	DefaultLowInputLatency  float64
	DefaultHighInputLatency float64
	DefaultSampleRate       float64
	IsDefaultInput          bool
}

// InputDevices returns the devices that can capture audio.
func InputDevices() ([]DeviceInfo, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}

	count := int(C.Pa_GetDeviceCount())
	if count < 0 {
		return nil, paError(C.PaError(count))
	}

	defaultInput := int(C.Pa_GetDefaultInputDevice())

	var devices []DeviceInfo
	for i := 0; i < count; i++ {
		info := C.Pa_GetDeviceInfo(C.PaDeviceIndex(i))
		if info == nil || info.maxInputChannels <= 0 {
			continue
		}
		devices = append(devices, DeviceInfo{
			Index:                   i,
			Name:                    C.GoString(info.name),
			MaxInputChannels:        int(info.maxInputChannels),
			DefaultLowInputLatency:  float64(info.defaultLowInputLatency),
			DefaultHighInputLatency: float64(info.defaultHighInputLatency),
			DefaultSampleRate:       float64(info.defaultSampleRate),
			IsDefaultInput:          i == defaultInput,
		})
	}
	return devices, nil
}

// stream is an open PortAudio input stream with a C-side read buffer.
type stream struct {
	stream   unsafe.Pointer
	buffer   unsafe.Pointer
	frames   int
	channels int
	closed   bool
	mu       sync.Mutex
}

// openInput opens a float32 input stream on the given device.
func openInput(device, channels int, sampleRate float64, framesPerBuffer int) (*stream, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}

	idx := C.PaDeviceIndex(device)
	if device == DefaultDevice {
		idx = C.Pa_GetDefaultInputDevice()
		if idx == C.paNoDevice {
			return nil, errors.New("portaudio: no default input device")
		}
	}
	info := C.Pa_GetDeviceInfo(idx)
	if info == nil {
		return nil, fmt.Errorf("portaudio: no such device %d", device)
	}
	if int(info.maxInputChannels) < channels {
		return nil, fmt.Errorf("portaudio: device %d (%s) has %d input channels, need %d",
			device, C.GoString(info.name), int(info.maxInputChannels), channels)
	}

	inputParams := &C.PaStreamParameters{
		device:                    idx,
		channelCount:              C.int(channels),
		sampleFormat:              C.paFloat32,
		suggestedLatency:          info.defaultHighInputLatency,
		hostApiSpecificStreamInfo: nil,
	}

	var paStream unsafe.Pointer
	err := paError(C.pa_open_stream(
		&paStream,
		inputParams,
		C.double(sampleRate),
		C.ulong(framesPerBuffer),
		C.paClipOff,
	))
	if err != nil {
		return nil, err
	}

	// samples * channels * sizeof(float32)
	bufferSize := framesPerBuffer * channels * 4

	return &stream{
		stream:   paStream,
		buffer:   C.malloc(C.size_t(bufferSize)),
		frames:   framesPerBuffer,
		channels: channels,
	}, nil
}

func (s *stream) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("portaudio: stream closed")
	}
	return paError(C.pa_start_stream(s.stream))
}

func (s *stream) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	C.pa_stop_stream(s.stream)
	err := paError(C.pa_close_stream(s.stream))
	C.free(s.buffer)
	return err
}

// read blocks until one buffer of frames is available and returns a copy of
// the interleaved samples. On ErrInputOverflowed the samples are returned
// alongside the error.
func (s *stream) read() ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.New("portaudio: stream closed")
	}

	err := paError(C.pa_read_stream(s.stream, s.buffer, C.ulong(s.frames)))
	if err != nil && !errors.Is(err, ErrInputOverflowed) {
		return nil, err
	}

	samples := make([]float32, s.frames*s.channels)
	copy(samples, unsafe.Slice((*float32)(s.buffer), len(samples)))
	return samples, err
}
