//go:build whispercpp

package speech

/*
#cgo LDFLAGS: -lwhisper -lstdc++ -lm

#include <stdlib.h>
#include <whisper.h>
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unsafe"
)

func init() {
	mustHandle("whisper", func(cfg Config, logger *slog.Logger) (Engine, error) {
		return NewWhisperEngine(cfg, logger)
	})
}

// NativeAvailable reports whether the whisper.cpp backend is compiled in.
func NativeAvailable() bool { return true }

// WhisperEngine runs whisper.cpp in process. Build with -tags whispercpp and
// point CGO_CFLAGS / CGO_LDFLAGS at a whisper.cpp build.
type WhisperEngine struct {
	log     *slog.Logger
	threads int

	mu  sync.Mutex
	ctx *C.struct_whisper_context
}

// NewWhisperEngine loads the model resolved by ModelPath.
func NewWhisperEngine(cfg Config, logger *slog.Logger) (*WhisperEngine, error) {
	logger = loggerOrDefault(logger)
	path := ModelPath(cfg)
	if err := checkModelFile(path); err != nil {
		return nil, err
	}

	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	cParams := C.whisper_context_default_params()
	cParams.use_gpu = C.bool(false)

	wctx := C.whisper_init_from_file_with_params(cPath, cParams)
	if wctx == nil {
		return nil, fmt.Errorf("whisper: failed to load %s", path)
	}
	e := &WhisperEngine{
		log:     logger.With("component", "speech.whisper", "model_path", path),
		threads: cfg.Threads,
		ctx:     wctx,
	}
	e.log.Info("whisper model loaded", "multilingual", C.whisper_is_multilingual(wctx) != 0)
	return e, nil
}

// Transcribe implements Engine. Decoding is greedy at temperature 0 with no
// temperature fallback, and never translates. opts.HighPrecision is ignored:
// the model always runs at full precision.
func (e *WhisperEngine) Transcribe(ctx context.Context, samples []float32, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(samples) == 0 {
		return "", nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx == nil {
		return "", errors.New("whisper: engine closed")
	}

	state := C.whisper_init_state(e.ctx)
	if state == nil {
		return "", errors.New("whisper: failed to allocate state")
	}
	defer C.whisper_free_state(state)

	params := C.whisper_full_default_params(C.WHISPER_SAMPLING_GREEDY)
	params.print_progress = C.bool(false)
	params.print_realtime = C.bool(false)
	params.print_timestamps = C.bool(false)
	params.translate = C.bool(false)
	params.temperature = 0
	params.temperature_inc = 0
	if e.threads > 0 {
		params.n_threads = C.int(e.threads)
	}

	lang := opts.Language
	if lang == "" {
		lang = "auto"
		params.detect_language = C.bool(true)
	}
	cLang := C.CString(lang)
	defer C.free(unsafe.Pointer(cLang))
	params.language = cLang

	cSamples := (*C.float)(unsafe.Pointer(&samples[0]))
	if ret := C.whisper_full_with_state(e.ctx, state, params, cSamples, C.int(len(samples))); ret != 0 {
		return "", fmt.Errorf("whisper: inference failed (code %d)", int(ret))
	}

	n := int(C.whisper_full_n_segments_from_state(state))
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		text := strings.TrimSpace(C.GoString(C.whisper_full_get_segment_text_from_state(state, C.int(i))))
		if text != "" {
			parts = append(parts, text)
		}
	}
	e.log.Debug("block transcribed", "samples", len(samples), "segments", len(parts))
	return strings.Join(parts, " "), nil
}

// Close implements Engine.
func (e *WhisperEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx != nil {
		C.whisper_free(e.ctx)
		e.ctx = nil
	}
	return nil
}
