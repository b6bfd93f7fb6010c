//go:build !whispercpp

package speech

import "log/slog"

func init() {
	mustHandle("whisper", func(cfg Config, logger *slog.Logger) (Engine, error) {
		return nil, ErrNativeUnavailable
	})
}

// NativeAvailable reports whether the whisper.cpp backend is compiled in.
func NativeAvailable() bool { return false }
