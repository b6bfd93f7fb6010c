// Package meter converts audio into a normalised loudness level and keeps the
// smoothed and peak-hold state of a level meter display.
//
// A level is 0 at -80 dBFS or below and 1 at 0 dBFS:
//
//	rms   = sqrt(mean(x²))
//	db    = 20·log10(rms + 1e-10)
//	level = clamp((db + 80) / 80, 0, 1)
package meter

import (
	"fmt"
	"math"
)

const (
	// FloorDB is the level mapped to 0.
	FloorDB = -80.0
	// Epsilon keeps log10 finite on digital silence.
	Epsilon = 1e-10
	// Alpha is the weight of a new sample in the moving average.
	Alpha = 0.25
	// PeakDecay is how much the peak marker falls per update.
	PeakDecay = 0.02
)

// Level returns the normalised loudness of samples in [0, 1].
// An empty slice yields 0.
func Level(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	return FromDB(20 * math.Log10(rms+Epsilon))
}

// FromDB maps a dBFS value to a level in [0, 1].
func FromDB(db float64) float64 {
	if math.IsNaN(db) {
		return 0
	}
	return clamp01((db - FloorDB) / -FloorDB)
}

// DB maps a level back to dBFS.
func DB(level float64) float64 {
	return FloorDB + level*-FloorDB
}

// Readout formats a smoothed level as a dB string.
func Readout(ema float64) string {
	if ema <= 0 {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", DB(ema))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
