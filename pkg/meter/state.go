package meter

import (
	"fmt"
	"math"
)

// State is the display state of a meter. The zero value is a silent meter.
type State struct {
	EMA  float64
	Peak float64
}

// Update folds a new level sample into s.
func (s *State) Update(level float64) {
	level = clamp01(level)
	s.EMA = Alpha*level + (1-Alpha)*s.EMA
	if s.EMA > s.Peak {
		s.Peak = s.EMA
	} else {
		s.Peak = math.Max(0, s.Peak-PeakDecay)
	}
}

// BarWidth returns the filled width of a bar of the given total width.
// A non-empty meter is always at least one cell wide.
func (s State) BarWidth(width int) int {
	return scale(s.EMA, width)
}

// PeakX returns the column of the peak marker in a bar of the given width.
func (s State) PeakX(width int) int {
	return max(scale(s.Peak, width)-1, 0)
}

// Color returns the bar colour for the current smoothed level.
func (s State) Color() RGB {
	return ColorFor(s.EMA)
}

func scale(v float64, width int) int {
	if width <= 0 {
		return 0
	}
	return min(max(int(clamp01(v)*float64(width)), 1), width)
}

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorFor maps a level to a colour. Red ramps in over [0.6, 1] and green
// ramps out over [0, 0.6].
func ColorFor(level float64) RGB {
	red := clamp01((level - 0.6) / 0.4)
	green := 1 - clamp01(level/0.6)
	return RGB{
		R: uint8(math.Round(255 * red)),
		G: uint8(math.Round(255 * green)),
	}
}
